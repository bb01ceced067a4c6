// internal/app/features/departments/handler.go
package departments

import (
	errorsfeature "github.com/tantrafest/tantra/internal/app/features/errors"
	"github.com/tantrafest/tantra/internal/app/store/docstore"
	"github.com/tantrafest/tantra/internal/app/system/flash"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Departments.
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
