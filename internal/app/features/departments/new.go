// internal/app/features/departments/new.go
package departments

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	departmentstore "github.com/tantrafest/tantra/internal/app/store/departments"
	"github.com/tantrafest/tantra/internal/app/system/apperr"
	"github.com/tantrafest/tantra/internal/app/system/flash"
	"github.com/tantrafest/tantra/internal/app/system/formutil"
	"github.com/tantrafest/tantra/internal/app/system/htmlsanitize"
	"github.com/tantrafest/tantra/internal/app/system/inputval"
	"github.com/tantrafest/tantra/internal/app/system/limits"
	"github.com/tantrafest/tantra/internal/app/system/normalize"
	"github.com/tantrafest/tantra/internal/app/system/timeouts"
	"github.com/tantrafest/tantra/internal/domain/models"
	"go.uber.org/zap"
)

// ServeNew renders the "Add Department" form above the existing departments.
// GET /add_department
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "add department form")
	defer cancel()

	depts, err := departmentstore.New(h.Store).List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list departments failed", err, "Could not load departments.", "/")
		return
	}
	data := newData{Existing: toRows(depts)}
	formutil.SetBase(&data.Base, w, r, h.Flash, "Add Department", "/")
	templates.Render(w, r, "department_new", data)
}

// HandleCreate stores a department. The description is sanitized before it
// is stored since the public site renders it as HTML.
// POST /add_department
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxAdminForm)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/add_department")
		return
	}
	name := normalize.Name(r.FormValue("name"))
	desc := htmlsanitize.Sanitize(r.FormValue("description"))
	logo := strings.TrimSpace(r.FormValue("logo_url"))
	qr := strings.TrimSpace(r.FormValue("qr_url"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "add department")
	defer cancel()
	store := departmentstore.New(h.Store)

	renderWithError := func(msg string) {
		data := newData{Name: name, Description: desc, LogoURL: logo, QRURL: qr}
		if depts, err := store.List(ctx); err == nil {
			data.Existing = toRows(depts)
		}
		formutil.SetBase(&data.Base, w, r, h.Flash, "Add Department", "/")
		data.SetError(msg)
		templates.Render(w, r, "department_new", data)
	}

	if res := inputval.Validate(createDeptInput{Name: name, LogoURL: logo, QRURL: qr}); res.HasErrors() {
		renderWithError(res.First())
		return
	}

	dept, err := store.Create(ctx, models.Department{Name: name, Description: desc, LogoURL: logo, QRURL: qr})
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			renderWithError(apperr.Message(err))
			return
		}
		h.ErrLog.LogServerError(w, r, "create department failed", err, "Database error while creating the department.", "/")
		return
	}

	h.Log.Info("department created", zap.String("dept_id", dept.ID), zap.String("name", dept.Name))
	h.Flash.Add(w, r, flash.Success, "Department \""+dept.Name+"\" added.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
