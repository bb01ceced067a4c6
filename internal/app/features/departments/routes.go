// internal/app/features/departments/routes.go
package departments

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/add_department", h.ServeNew)
		r.Post("/add_department", h.HandleCreate)
		r.Get("/db_content", h.ServeContent)
		r.Get("/api/data", h.ServeData)
	}
}
