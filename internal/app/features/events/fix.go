// internal/app/features/events/fix.go
package events

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	departmentstore "github.com/tantrafest/tantra/internal/app/store/departments"
	eventstore "github.com/tantrafest/tantra/internal/app/store/events"
	"github.com/tantrafest/tantra/internal/app/system/apperr"
	"github.com/tantrafest/tantra/internal/app/system/flash"
	"github.com/tantrafest/tantra/internal/app/system/formutil"
	"github.com/tantrafest/tantra/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeFix lists events whose dept_id join key is missing or points at a
// department that does not exist, with a form to reassign each.
// GET /fix_events
func (h *Handler) ServeFix(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "fix events")
	defer cancel()

	depts, err := departmentstore.New(h.Store).List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list departments failed", err, "Could not load departments.", "/")
		return
	}
	evs, err := eventstore.New(h.Store).List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list events failed", err, "Could not load events.", "/")
		return
	}

	data := fixData{
		Events:      misassigned(evs, depts),
		Departments: deptOptions(depts, ""),
	}
	formutil.SetBase(&data.Base, w, r, h.Flash, "Fix Events", "/")
	templates.Render(w, r, "events_fix", data)
}

// HandleFix sets an event's dept_id.
// POST /fix_events
func (h *Handler) HandleFix(w http.ResponseWriter, r *http.Request) {
	eventID := strings.TrimSpace(r.FormValue("event_id"))
	deptID := strings.TrimSpace(r.FormValue("dept_id"))
	if eventID == "" || deptID == "" {
		h.Flash.Add(w, r, flash.Error, "Choose an event and a department.")
		http.Redirect(w, r, "/fix_events", http.StatusSeeOther)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "fix event")
	defer cancel()

	err := eventstore.New(h.Store).SetDeptID(ctx, eventID, deptID)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		h.Flash.Add(w, r, flash.Error, "Event "+eventID+" no longer exists.")
	case err != nil:
		h.ErrLog.LogServerError(w, r, "fix event failed", err, "Could not update the event.", "/fix_events")
		return
	default:
		h.Log.Info("event department reassigned", zap.String("event_id", eventID), zap.String("dept_id", deptID))
		h.Flash.Add(w, r, flash.Success, "Updated event department.")
	}
	http.Redirect(w, r, "/fix_events", http.StatusSeeOther)
}
