// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/tantrafest/tantra/internal/app/system/export"
	"github.com/tantrafest/tantra/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Tantra.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, export_formats, etc.
//   - Environment variables: TANTRA_MONGO_URI, TANTRA_EXPORT_FORMATS, etc.
//   - Command-line flags: --mongo_uri, --export_formats, etc.
var appConfigKeys = []config.AppKey{
	{Name: "store_backend", Default: "mongo", Desc: "Document store: 'mongo' or 'memory'"},
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "tantra", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 50, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Flash cookie signing key (must be strong in production)"},

	// Export pipeline
	{Name: "export_formats", Default: "xlsx,pdf", Desc: "Comma-separated export formats to enable (xlsx, pdf)"},
	{Name: "export_filename_base", Default: "tantra", Desc: "Leading token of export filenames"},

	// Public registration endpoint
	{Name: "register_rate_limit", Default: 10, Desc: "Registrations allowed per client IP per window (0 disables)"},
	{Name: "register_rate_window", Default: "1m", Desc: "Registration rate-limit window (e.g., 1m, 30s)"},

	// Timeouts
	{Name: "timeout_ping", Default: "2s", Desc: "Health check ping timeout"},
	{Name: "timeout_short", Default: "5s", Desc: "Single-document operation timeout"},
	{Name: "timeout_medium", Default: "10s", Desc: "Listing and dashboard timeout"},
	{Name: "timeout_export", Default: "60s", Desc: "Export gather timeout"},

	// Tracing
	{Name: "trace_enabled", Default: false, Desc: "Trace the export pipeline with OpenTelemetry"},
	{Name: "trace_exporter", Default: "stdout", Desc: "Trace exporter: 'stdout' or 'none'"},

	{Name: "base_url", Default: "http://localhost:3000", Desc: "Public base URL of the admin tool"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, TANTRA_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "TANTRA", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		StoreBackend:     appValues.String("store_backend"),
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),

		ExportFormats:      export.ParseFormats(appValues.String("export_formats")),
		ExportFilenameBase: appValues.String("export_filename_base"),

		RegisterRateLimit:  appValues.Int("register_rate_limit"),
		RegisterRateWindow: appValues.Duration("register_rate_window", time.Minute),

		PingTimeout:   appValues.Duration("timeout_ping", timeouts.DefaultPing),
		ShortTimeout:  appValues.Duration("timeout_short", timeouts.DefaultShort),
		MediumTimeout: appValues.Duration("timeout_medium", timeouts.DefaultMedium),
		ExportTimeout: appValues.Duration("timeout_export", timeouts.DefaultExport),

		TraceEnabled:  appValues.Bool("trace_enabled"),
		TraceExporter: appValues.String("trace_exporter"),

		BaseURL: appValues.String("base_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// The MongoDB URI and the export format list are checked here so that
// typos abort startup instead of surfacing on the first export.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	switch appCfg.StoreBackend {
	case "mongo":
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	case "memory":
		if coreCfg.Env == "prod" {
			logger.Warn("memory store backend in prod: data is lost on restart")
		}
	default:
		return fmt.Errorf("store_backend must be 'mongo' or 'memory', got %q", appCfg.StoreBackend)
	}

	if _, err := export.NewRegistry(appCfg.ExportFormats...); err != nil {
		return fmt.Errorf("export_formats: %w", err)
	}
	if appCfg.ExportFilenameBase == "" {
		return fmt.Errorf("export_filename_base must not be empty")
	}
	if appCfg.RegisterRateLimit > 0 && appCfg.RegisterRateWindow <= 0 {
		return fmt.Errorf("register_rate_window must be positive when register_rate_limit is set")
	}
	return nil
}
