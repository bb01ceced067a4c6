// internal/app/features/participants/handler.go
package participants

import (
	errorsfeature "github.com/tantrafest/tantra/internal/app/features/errors"
	"github.com/tantrafest/tantra/internal/app/store/docstore"
	"github.com/tantrafest/tantra/internal/app/store/queries/exportrows"
	"github.com/tantrafest/tantra/internal/app/system/export"
	"github.com/tantrafest/tantra/internal/app/system/flash"
	"github.com/tantrafest/tantra/internal/app/system/tracing"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Handler serves the participant listing and its downloads. Both run the same
// aggregation, so a download always matches what the listing showed.
type Handler struct {
	Store        docstore.Store
	Rows         *exportrows.Service
	Exports      *export.Registry
	FilenameBase string
	Tracer       trace.Tracer
	Flash        *flash.Store
	ErrLog       *errorsfeature.ErrorLogger
	Log          *zap.Logger
}

// NewHandler wires the handler. A nil tracer disables spans.
func NewHandler(store docstore.Store, exports *export.Registry, filenameBase string, tracer trace.Tracer, fs *flash.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	tracer = tracing.OrNoop(tracer)
	return &Handler{
		Store:        store,
		Rows:         exportrows.NewService(store, logger, tracer),
		Exports:      exports,
		FilenameBase: filenameBase,
		Tracer:       tracer,
		Flash:        fs,
		ErrLog:       errLog,
		Log:          logger,
	}
}
