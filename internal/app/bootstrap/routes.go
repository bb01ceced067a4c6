// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	dashboardfeature "github.com/tantrafest/tantra/internal/app/features/dashboard"
	departmentsfeature "github.com/tantrafest/tantra/internal/app/features/departments"
	errorsfeature "github.com/tantrafest/tantra/internal/app/features/errors"
	eventsfeature "github.com/tantrafest/tantra/internal/app/features/events"
	healthfeature "github.com/tantrafest/tantra/internal/app/features/health"
	participantsfeature "github.com/tantrafest/tantra/internal/app/features/participants"
	registrationsfeature "github.com/tantrafest/tantra/internal/app/features/registrations"
	"github.com/tantrafest/tantra/internal/app/system/export"
	"github.com/tantrafest/tantra/internal/app/system/flash"
	"github.com/tantrafest/tantra/internal/app/system/ratelimit"
	"github.com/tantrafest/tantra/internal/app/system/tracing"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. Tantra boots the template engine, creates
// the flash cookie store and mounts the admin pages, the JSON endpoints and
// the public registration endpoint.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	fs, err := flash.New(appCfg.SessionKey, coreCfg.Env == "prod", logger)
	if err != nil {
		logger.Error("flash store init failed", zap.Error(err))
		return nil, err
	}

	var tracer trace.Tracer
	if traceProvider != nil {
		tracer = traceProvider.Tracer()
	}

	r, err := newRouter(appCfg, deps, fs, tracer, logger)
	if err != nil {
		return nil, err
	}
	r.Handle("/static/*", fileserver.Handler("/static", "public"))
	return r, nil
}

// newRouter mounts every feature on a fresh router. It does not touch the
// template engine, so the JSON endpoints can be exercised without one.
func newRouter(appCfg AppConfig, deps DBDeps, fs *flash.Store, tracer trace.Tracer, logger *zap.Logger) (chi.Router, error) {
	exports, err := export.NewRegistry(appCfg.ExportFormats...)
	if err != nil {
		logger.Error("export registry init failed", zap.Error(err))
		return nil, err
	}
	logger.Info("export formats enabled", zap.Any("formats", exports.Enabled()))

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		errorsfeature.RenderNotFound(w, req, "That page does not exist.", "/")
	})

	// Health check endpoint for load balancers and orchestrators
	var pinger healthfeature.Pinger
	backend := "memory"
	if deps.MongoClient != nil {
		pinger = healthfeature.MongoPinger(deps.MongoClient)
		backend = "mongo"
	}
	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(pinger, backend, logger)))

	// Admin pages
	r.Group(dashboardfeature.Routes(dashboardfeature.NewHandler(deps.Store, fs, errLog, logger)))
	r.Group(departmentsfeature.Routes(departmentsfeature.NewHandler(deps.Store, fs, errLog, logger)))
	r.Group(eventsfeature.Routes(eventsfeature.NewHandler(deps.Store, fs, errLog, logger)))

	participantsHandler := participantsfeature.NewHandler(deps.Store, exports, appCfg.ExportFilenameBase,
		tracing.OrNoop(tracer), fs, errLog, logger)
	r.Group(participantsfeature.Routes(participantsHandler))

	// Public registration endpoint
	var limiter *ratelimit.Limiter
	if appCfg.RegisterRateLimit > 0 {
		limiter = ratelimit.New(appCfg.RegisterRateLimit, appCfg.RegisterRateWindow)
	}
	r.Group(registrationsfeature.Routes(registrationsfeature.NewHandler(deps.Store, errLog, logger), limiter))

	return r, nil
}
