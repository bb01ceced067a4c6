// internal/app/features/events/json.go
package events

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	errorsfeature "github.com/tantrafest/tantra/internal/app/features/errors"
	eventstore "github.com/tantrafest/tantra/internal/app/store/events"
	"github.com/tantrafest/tantra/internal/app/system/apperr"
	"github.com/tantrafest/tantra/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeDeptEvents lists a department's events for the public site.
// GET /dept_events/{deptID}
//
// Events match on either the department field or the legacy dept_id. A store
// failure is logged and answered with an empty list so the public page still
// renders.
func (h *Handler) ServeDeptEvents(w http.ResponseWriter, r *http.Request) {
	deptID := strings.TrimSpace(chi.URLParam(r, "deptID"))
	if deptID == "" {
		errorsfeature.WriteJSON(w, http.StatusOK, map[string]any{"events": []deptEventJSON{}})
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "dept events")
	defer cancel()

	evs, err := eventstore.New(h.Store).ListByDepartment(ctx, deptID)
	if err != nil {
		h.Log.Warn("dept events lookup failed", zap.String("dept_id", deptID), zap.Error(err))
		evs = nil
	}
	out := make([]deptEventJSON, 0, len(evs))
	for _, e := range evs {
		out = append(out, toDeptEventJSON(e))
	}
	errorsfeature.WriteJSON(w, http.StatusOK, map[string]any{"events": out, "dept_id": deptID})
}

// ServeEvent returns one event.
// GET /event/{eventID}
func (h *Handler) ServeEvent(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "eventID"))
	if id == "" {
		errorsfeature.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "missing id"})
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "event lookup")
	defer cancel()

	ev, err := eventstore.New(h.Store).Get(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		errorsfeature.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	if err != nil {
		h.ErrLog.JSON(w, r, "event lookup failed", err)
		return
	}
	errorsfeature.WriteJSON(w, http.StatusOK, map[string]any{"event": toEventJSON(ev)})
}
