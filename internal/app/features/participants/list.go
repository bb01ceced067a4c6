// internal/app/features/participants/list.go
package participants

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	departmentstore "github.com/tantrafest/tantra/internal/app/store/departments"
	eventstore "github.com/tantrafest/tantra/internal/app/store/events"
	"github.com/tantrafest/tantra/internal/app/store/queries/exportrows"
	"github.com/tantrafest/tantra/internal/app/system/export"
	"github.com/tantrafest/tantra/internal/app/system/formutil"
	"github.com/tantrafest/tantra/internal/app/system/timeouts"
	"github.com/tantrafest/tantra/internal/domain/models"
)

// ServeList renders the participant listing with department and event
// filters. The event choices are limited to the selected department.
// GET /view_participants
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	deptID := strings.TrimSpace(r.URL.Query().Get("dept_id"))
	eventID := strings.TrimSpace(r.URL.Query().Get("event_id"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Export(), h.Log, "participants list")
	defer cancel()

	res, err := h.Rows.Gather(ctx, exportrows.Filter{DeptID: deptID, EventID: eventID})
	if err != nil {
		h.ErrLog.HandleStoreError(w, r, "participants gather failed", err, "/")
		return
	}

	depts, err := departmentstore.New(h.Store).List(ctx)
	if err != nil {
		h.ErrLog.HandleStoreError(w, r, "list departments failed", err, "/")
		return
	}
	evStore := eventstore.New(h.Store)
	var evs []models.Event
	if res.DeptName != "" {
		evs, err = evStore.ListByDepartment(ctx, deptID, res.DeptName)
	} else {
		evs, err = evStore.List(ctx)
	}
	if err != nil {
		h.ErrLog.HandleStoreError(w, r, "list events failed", err, "/")
		return
	}

	data := listData{
		Departments: deptOptions(depts, deptID),
		Events:      eventOptions(evs, eventID),
		DeptID:      deptID,
		EventID:     eventID,
		DeptName:    res.DeptName,
		EventName:   res.EventName,
		SortLabel:   sortLabel(res.SortMode),
		Headers:     export.Headers,
		Rows:        res.Rows,
		Exports:     exportLinks(h.Exports.Enabled(), deptID, eventID),
	}
	formutil.SetBase(&data.Base, w, r, h.Flash, "Participants", "/")
	templates.Render(w, r, "participants_list", data)
}
