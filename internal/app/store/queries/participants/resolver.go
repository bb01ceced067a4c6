// Package participants resolves the participant behind a registration record.
//
// Registrations written by different versions of the registration site locate
// their participant differently: embedded inline, by profile ID, or only by
// email. Resolver tries each shape in a fixed order and stops at the first hit.
package participants

import (
	"context"
	"errors"

	"github.com/tantrafest/tantra/internal/app/store/docstore"
	"github.com/tantrafest/tantra/internal/app/system/apperr"
	"github.com/tantrafest/tantra/internal/app/system/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Profile collections, searched in this order.
const (
	ParticipantsCollection = "participants"
	UsersCollection        = "users"
)

// Registration keys that may carry a participant reference.
var (
	idKeys    = []string{"participant_id", "user_id", "uid"}
	emailKeys = []string{"participant_email", "email", "user_email"}
)

// strategy looks for the participant one way. ok is false when this way has
// nothing to offer; err is reserved for store failures.
type strategy struct {
	name string
	try  func(ctx context.Context, reg map[string]any) (map[string]any, bool, error)
}

// Resolver finds participant fields for raw registration documents.
type Resolver struct {
	store  docstore.Store
	tracer trace.Tracer
	chain  []strategy
}

// NewResolver returns a Resolver reading profiles from store. A nil tracer
// disables spans.
func NewResolver(store docstore.Store, tracer trace.Tracer) *Resolver {
	r := &Resolver{store: store, tracer: tracing.OrNoop(tracer)}
	r.chain = []strategy{
		{name: "inline", try: r.inline},
		{name: "id", try: r.byID},
		{name: "email", try: r.byEmail},
	}
	return r
}

// Resolve returns the participant's raw fields. ok is false when no strategy
// matched; callers skip such registrations. A non-nil error is always a store
// failure and must be propagated.
func (r *Resolver) Resolve(ctx context.Context, reg map[string]any) (map[string]any, bool, error) {
	ctx, span := r.tracer.Start(ctx, tracing.SpanResolve)
	defer span.End()

	for _, s := range r.chain {
		p, ok, err := s.try(ctx, reg)
		if err != nil {
			span.RecordError(err)
			return nil, false, err
		}
		if ok {
			span.SetAttributes(attribute.String("participants.strategy", s.name))
			return p, true, nil
		}
	}
	span.SetAttributes(attribute.String("participants.strategy", "none"))
	return nil, false, nil
}

func (r *Resolver) inline(_ context.Context, reg map[string]any) (map[string]any, bool, error) {
	p, ok := reg["participant"].(map[string]any)
	if !ok || len(p) == 0 {
		return nil, false, nil
	}
	return p, true, nil
}

func (r *Resolver) byID(ctx context.Context, reg map[string]any) (map[string]any, bool, error) {
	id := docstore.FirstString(reg, idKeys...)
	if id == "" {
		return nil, false, nil
	}
	for _, coll := range []string{ParticipantsCollection, UsersCollection} {
		doc, err := r.store.Get(ctx, coll, id)
		if errors.Is(err, docstore.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, false, apperr.Store("get", coll, err)
		}
		if len(doc.Fields) > 0 {
			return doc.Fields, true, nil
		}
	}
	return nil, false, nil
}

func (r *Resolver) byEmail(ctx context.Context, reg map[string]any) (map[string]any, bool, error) {
	email := docstore.FirstString(reg, emailKeys...)
	if email == "" {
		return nil, false, nil
	}
	for _, coll := range []string{ParticipantsCollection, UsersCollection} {
		docs, err := r.store.Find(ctx, docstore.Query{
			Collection: coll,
			Filters:    []docstore.Filter{docstore.Eq("email", email)},
			Limit:      1,
		})
		if err != nil {
			return nil, false, apperr.Store("find", coll, err)
		}
		if len(docs) > 0 && len(docs[0].Fields) > 0 {
			return docs[0].Fields, true, nil
		}
	}
	return nil, false, nil
}
