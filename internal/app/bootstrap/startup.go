// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/tantrafest/tantra/internal/app/resources"
	"github.com/tantrafest/tantra/internal/app/system/timeouts"
	"github.com/tantrafest/tantra/internal/app/system/tracing"
	"go.uber.org/zap"
)

// traceProvider is created in Startup and flushed in Shutdown.
var traceProvider *tracing.Provider

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	timeouts.Configure(timeouts.Config{
		Ping:   appCfg.PingTimeout,
		Short:  appCfg.ShortTimeout,
		Medium: appCfg.MediumTimeout,
		Export: appCfg.ExportTimeout,
	})

	p, err := tracing.NewProvider(tracing.Config{
		Enabled:     appCfg.TraceEnabled,
		Exporter:    appCfg.TraceExporter,
		ServiceName: "tantra",
	})
	if err != nil {
		logger.Error("tracing init failed", zap.Error(err))
		return err
	}
	traceProvider = p
	if appCfg.TraceEnabled {
		logger.Info("export tracing enabled", zap.String("exporter", appCfg.TraceExporter))
	}
	return nil
}
