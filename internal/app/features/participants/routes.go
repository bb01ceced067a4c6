// internal/app/features/participants/routes.go
package participants

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/view_participants", h.ServeList)
		r.Get("/export_participants", h.ServeExport)
	}
}
