// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	errorsfeature "github.com/tantrafest/tantra/internal/app/features/errors"
	"github.com/tantrafest/tantra/internal/app/store/docstore"
	"github.com/tantrafest/tantra/internal/app/store/queries/overview"
	"github.com/tantrafest/tantra/internal/app/system/flash"
	"github.com/tantrafest/tantra/internal/app/system/timeouts"
	"github.com/tantrafest/tantra/internal/app/system/viewdata"
	"go.uber.org/zap"
)

type Handler struct {
	Store  docstore.Store
	Flash  *flash.Store
	ErrLog *errorsfeature.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(store docstore.Store, fs *flash.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  store,
		Flash:  fs,
		ErrLog: errLog,
		Log:    logger,
	}
}

// ServeDashboard renders the overview page.
// GET /
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "dashboard load")
	defer cancel()

	sum, err := overview.Load(ctx, h.Store)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "dashboard load failed", err, "Could not load the dashboard.", "/")
		return
	}

	data := dashboardData{
		BaseVM: viewdata.New(w, r, h.Flash, "Dashboard", "/"),
	}
	data.fill(sum)
	templates.Render(w, r, "dashboard", data)
}
