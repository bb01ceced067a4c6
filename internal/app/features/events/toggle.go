// internal/app/features/events/toggle.go
package events

import (
	"errors"
	"net/http"
	"strings"

	eventstore "github.com/tantrafest/tantra/internal/app/store/events"
	"github.com/tantrafest/tantra/internal/app/system/apperr"
	"github.com/tantrafest/tantra/internal/app/system/flash"
	"github.com/tantrafest/tantra/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleToggle opens a closed event or closes an open one. A missing or
// unknown event ID just returns to the dashboard.
// POST /toggle_event_status
func (h *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.FormValue("event_id"))
	if id == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "toggle event")
	defer cancel()

	status, err := eventstore.New(h.Store).ToggleStatus(ctx, id)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		h.Log.Info("toggle for unknown event", zap.String("event_id", id))
	case err != nil:
		h.ErrLog.LogServerError(w, r, "toggle event failed", err, "Could not update the event.", "/")
		return
	default:
		h.Log.Info("event status toggled", zap.String("event_id", id), zap.Bool("open", status.Open))
		h.Flash.Add(w, r, flash.Success, "Event "+id+" is now "+strings.ToLower(status.Label())+".")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
