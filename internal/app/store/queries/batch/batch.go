// Package batch runs membership queries over ID lists longer than the store
// accepts in one filter.
package batch

import (
	"context"

	"github.com/tantrafest/tantra/internal/app/store/docstore"
	"github.com/tantrafest/tantra/internal/app/system/apperr"
	"github.com/tantrafest/tantra/internal/app/system/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Limit is the chunk size: the store's membership-filter limit.
const Limit = docstore.MaxInValues

// Batcher issues one "field in chunk" query per chunk of at most Limit IDs.
type Batcher struct {
	store  docstore.Store
	tracer trace.Tracer
}

// New returns a Batcher over store. A nil tracer disables spans.
func New(store docstore.Store, tracer trace.Tracer) *Batcher {
	return &Batcher{store: store, tracer: tracing.OrNoop(tracer)}
}

// FindIn returns every document in collection whose field is one of ids.
// Results are concatenated in chunk order; order within a chunk is whatever
// the store returns. No IDs means no queries. The first failing chunk aborts
// the whole call and no partial result is returned.
func (b *Batcher) FindIn(ctx context.Context, collection, field string, ids []string) ([]docstore.Doc, error) {
	var out []docstore.Doc
	for i, chunk := range Chunks(ids, Limit) {
		docs, err := b.findChunk(ctx, collection, field, i, chunk)
		if err != nil {
			return nil, apperr.Store("find", collection, err)
		}
		out = append(out, docs...)
	}
	return out, nil
}

func (b *Batcher) findChunk(ctx context.Context, collection, field string, index int, chunk []string) ([]docstore.Doc, error) {
	ctx, span := b.tracer.Start(ctx, tracing.SpanBatchChunk, trace.WithAttributes(
		attribute.String(tracing.AttrCollection, collection),
		attribute.String(tracing.AttrField, field),
		attribute.Int(tracing.AttrChunkIndex, index),
		attribute.Int(tracing.AttrChunkSize, len(chunk)),
	))
	defer span.End()

	docs, err := b.store.Find(ctx, docstore.Query{
		Collection: collection,
		Filters:    []docstore.Filter{docstore.In(field, chunk)},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int(tracing.AttrResultCount, len(docs)))
	return docs, nil
}

// FindIn is shorthand for New(store, nil).FindIn.
func FindIn(ctx context.Context, store docstore.Store, collection, field string, ids []string) ([]docstore.Doc, error) {
	return New(store, nil).FindIn(ctx, collection, field, ids)
}

// Chunks splits ids into contiguous slices of at most size elements.
// The chunks share ids' backing array.
func Chunks(ids []string, size int) [][]string {
	if size <= 0 {
		size = Limit
	}
	if len(ids) == 0 {
		return nil
	}
	out := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		out = append(out, ids[start:end:end])
	}
	return out
}
