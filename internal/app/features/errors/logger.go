// internal/app/features/errors/logger.go
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/tantrafest/tantra/internal/app/system/apperr"
	"go.uber.org/zap"
)

// ErrorLogger logs a failure with request context and then renders the
// matching error page or JSON body. Handlers hold one as ErrLog.
type ErrorLogger struct {
	Log *zap.Logger
}

func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

func (e *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	return []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	}
}

// LogServerError logs at error level and renders a 500 page with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.Log.Error(logMsg, e.fields(r, err)...)
	RenderServerError(w, r, userMsg, backURL)
}

// LogBadRequest logs at warn level and renders a 400 page with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.Log.Warn(logMsg, e.fields(r, err)...)
	RenderBadRequest(w, r, userMsg, backURL)
}

// HandleStoreError renders err according to its apperr kind: 404 for
// ErrNotFound, 400 for validation and 500 for everything else.
func (e *ErrorLogger) HandleStoreError(w http.ResponseWriter, r *http.Request, logMsg string, err error, backURL string) {
	switch apperr.HTTPStatus(err) {
	case http.StatusNotFound:
		RenderNotFound(w, r, apperr.Message(err), backURL)
	case http.StatusBadRequest:
		e.LogBadRequest(w, r, logMsg, err, apperr.Message(err), backURL)
	default:
		e.LogServerError(w, r, logMsg, err, "A database error occurred. Please try again.", backURL)
	}
}

// JSON writes {"error": msg} with the status apperr assigns to err. Server
// errors are logged; store detail never reaches the client.
func (e *ErrorLogger) JSON(w http.ResponseWriter, r *http.Request, logMsg string, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		e.Log.Error(logMsg, e.fields(r, err)...)
	}
	WriteJSON(w, status, map[string]string{"error": apperr.Message(err)})
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
