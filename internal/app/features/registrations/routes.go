// internal/app/features/registrations/routes.go
package registrations

import (
	"github.com/go-chi/chi/v5"
	"github.com/tantrafest/tantra/internal/app/system/ratelimit"
)

// Routes mounts POST /api/register behind a per-client-IP limiter. A nil
// limiter leaves the endpoint unlimited.
func Routes(h *Handler, limiter *ratelimit.Limiter) func(chi.Router) {
	return func(r chi.Router) {
		if limiter != nil {
			r = r.With(ratelimit.Middleware(limiter, h.Log))
		}
		r.Post("/api/register", h.HandleRegister)
	}
}
