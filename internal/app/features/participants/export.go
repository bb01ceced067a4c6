// internal/app/features/participants/export.go
package participants

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	errorsfeature "github.com/tantrafest/tantra/internal/app/features/errors"
	"github.com/tantrafest/tantra/internal/app/store/queries/exportrows"
	"github.com/tantrafest/tantra/internal/app/system/export"
	"github.com/tantrafest/tantra/internal/app/system/timeouts"
	"github.com/tantrafest/tantra/internal/app/system/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ServeExport downloads the participant listing.
// GET /export_participants?dept_id=&event_id=&format=xlsx|pdf
//
// The format is checked before any store work: an unknown format is a 400 and
// a known format this deployment does not render is a 500. The file is
// rendered in memory so a failure can still produce an error response.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := strings.TrimSpace(q.Get("format"))
	if format == "" {
		format = string(export.FormatXLSX)
	}
	renderer, err := h.Exports.Lookup(format)
	if err != nil {
		h.ErrLog.JSON(w, r, "export format rejected", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Export(), h.Log, "participants export")
	defer cancel()

	filter := exportrows.Filter{
		DeptID:  strings.TrimSpace(q.Get("dept_id")),
		EventID: strings.TrimSpace(q.Get("event_id")),
	}
	res, err := h.Rows.Gather(ctx, filter)
	if err != nil {
		h.ErrLog.JSON(w, r, "participants gather failed", err)
		return
	}

	var buf bytes.Buffer
	_, span := h.Tracer.Start(ctx, tracing.SpanRender, trace.WithAttributes(
		attribute.String(tracing.AttrFormat, string(renderer.Format())),
		attribute.Int(tracing.AttrRowCount, len(res.Rows)),
	))
	err = renderer.Render(&buf, export.TableFromRows(res.Rows))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
	if err != nil {
		h.Log.Error("export render failed", zap.String("format", string(renderer.Format())), zap.Error(err))
		errorsfeature.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Could not render the export."})
		return
	}

	filename := export.Filename(h.FilenameBase, res.DeptName, res.EventName, renderer.Format())
	h.Log.Info("participants exported",
		zap.String("format", string(renderer.Format())),
		zap.String("dept_id", filter.DeptID),
		zap.String("event_id", filter.EventID),
		zap.Int("rows", len(res.Rows)),
		zap.String("filename", filename),
	)

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}
