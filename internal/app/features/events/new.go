// internal/app/features/events/new.go
package events

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	departmentstore "github.com/tantrafest/tantra/internal/app/store/departments"
	eventstore "github.com/tantrafest/tantra/internal/app/store/events"
	"github.com/tantrafest/tantra/internal/app/system/apperr"
	"github.com/tantrafest/tantra/internal/app/system/flash"
	"github.com/tantrafest/tantra/internal/app/system/formutil"
	"github.com/tantrafest/tantra/internal/app/system/htmlsanitize"
	"github.com/tantrafest/tantra/internal/app/system/inputval"
	"github.com/tantrafest/tantra/internal/app/system/limits"
	"github.com/tantrafest/tantra/internal/app/system/timeouts"
	"github.com/tantrafest/tantra/internal/domain/models"
	"go.uber.org/zap"
)

// ServeNew renders the "Add Event" form.
// GET /add_event
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "add event form")
	defer cancel()

	depts, err := departmentstore.New(h.Store).List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list departments failed", err, "Could not load departments.", "/")
		return
	}
	data := eventFormData{
		Departments: deptOptions(depts, r.URL.Query().Get("dept_id")),
		Open:        true,
	}
	formutil.SetBase(&data.Base, w, r, h.Flash, "Add Event", "/")
	templates.Render(w, r, "event_new", data)
}

// parseEventForm reads the add-event form. Status is "1" or "0"; anything
// else, including a missing value, means open.
func parseEventForm(r *http.Request) eventFormData {
	status := 1
	if v, err := strconv.Atoi(strings.TrimSpace(r.FormValue("status"))); err == nil {
		status = v
	}
	return eventFormData{
		DeptID:      strings.TrimSpace(r.FormValue("dept_id")),
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: htmlsanitize.Sanitize(r.FormValue("description")),
		Date:        strings.TrimSpace(r.FormValue("date")),
		Time:        strings.TrimSpace(r.FormValue("time")),
		Venue:       strings.TrimSpace(r.FormValue("venue")),
		ImageURL:    strings.TrimSpace(r.FormValue("image_url")),
		Price:       strings.TrimSpace(r.FormValue("price")),
		Prize:       strings.TrimSpace(r.FormValue("prize")),
		Open:        status != 0,
	}
}

// HandleCreate stores a new event under the next numeric ID. The event takes
// its payment QR from the department; a department that no longer exists
// leaves it empty.
// POST /add_event
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxAdminForm)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/add_event")
		return
	}
	form := parseEventForm(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "add event")
	defer cancel()

	deptStore := departmentstore.New(h.Store)
	depts, err := deptStore.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list departments failed", err, "Could not load departments.", "/")
		return
	}

	renderWithError := func(msg string) {
		data := form
		data.Departments = deptOptions(depts, form.DeptID)
		formutil.SetBase(&data.Base, w, r, h.Flash, "Add Event", "/")
		data.SetError(msg)
		templates.Render(w, r, "event_new", data)
	}

	input := createEventInput{
		DeptID: form.DeptID, Name: form.Name, Date: form.Date, Time: form.Time,
		Venue: form.Venue, ImageURL: form.ImageURL, Price: form.Price, Prize: form.Prize,
	}
	if res := inputval.Validate(input); res.HasErrors() {
		renderWithError(res.First())
		return
	}

	var qrURL string
	dept, err := deptStore.Get(ctx, form.DeptID)
	switch {
	case err == nil:
		qrURL = dept.QRURL
	case errors.Is(err, apperr.ErrNotFound):
		h.Log.Info("event created for unknown department", zap.String("dept_id", form.DeptID))
	default:
		h.ErrLog.LogServerError(w, r, "department lookup failed", err, "Could not load the department.", "/")
		return
	}

	status := models.StatusClosed
	if form.Open {
		status = models.StatusOpen
	}
	ev, err := eventstore.New(h.Store).Create(ctx, models.Event{
		Department:   form.DeptID,
		Name:         form.Name,
		Description:  form.Description,
		Date:         form.Date,
		Time:         form.Time,
		Venue:        form.Venue,
		ImageURL:     form.ImageURL,
		PaymentQRURL: qrURL,
		Price:        form.Price,
		Prize:        form.Prize,
		Status:       status,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			renderWithError(apperr.Message(err))
			return
		}
		h.ErrLog.LogServerError(w, r, "create event failed", err, "Database error while creating the event.", "/")
		return
	}

	h.Log.Info("event created", zap.String("event_id", ev.ID), zap.String("dept_id", ev.Department))
	h.Flash.Add(w, r, flash.Success, "Event \""+ev.Name+"\" added.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
