// internal/app/features/events/routes.go
package events

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/dept_events/{deptID}", h.ServeDeptEvents)
		r.Get("/event/{eventID}", h.ServeEvent)

		r.Get("/add_event", h.ServeNew)
		r.Post("/add_event", h.HandleCreate)
		r.Post("/toggle_event_status", h.HandleToggle)

		r.Get("/fix_events", h.ServeFix)
		r.Post("/fix_events", h.HandleFix)
	}
}
