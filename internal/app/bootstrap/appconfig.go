// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables (TANTRA_*), configuration
// files, or command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig
// carries the framework-level settings: ports, TLS, logging, CORS and body
// limits.
type AppConfig struct {
	// Document store. StoreBackend is "mongo" or "memory"; memory keeps
	// everything in process and is meant for demos and local UI work.
	StoreBackend     string
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Flash messages are carried in a signed cookie.
	SessionKey string

	// Export pipeline
	ExportFormats      []string // formats this deployment can render, e.g. ["xlsx","pdf"]
	ExportFilenameBase string   // first token of every export filename

	// Public registration endpoint
	RegisterRateLimit  int           // submissions per client IP per window; 0 disables
	RegisterRateWindow time.Duration // length of the rate-limit window

	// Operation timeouts applied through the timeouts package.
	PingTimeout   time.Duration
	ShortTimeout  time.Duration
	MediumTimeout time.Duration
	ExportTimeout time.Duration

	// Tracing of the export pipeline
	TraceEnabled  bool
	TraceExporter string // "stdout" or "none"

	BaseURL string // e.g., "https://admin.tantrafest.in" or "http://localhost:3000"
}
