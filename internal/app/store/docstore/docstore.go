// Package docstore is the document-store capability the admin tool is built on:
// point lookups, whole-collection streams, equality and bounded membership filters.
//
// Documents are schema-flexible. Their shapes drifted across versions of the
// registration site, so callers read fields through Doc.String with a list of
// accepted keys rather than decoding into fixed structs.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tantrafest/tantra/internal/app/system/apperr"
)

// MaxInValues is the largest value set a single membership filter may carry.
const MaxInValues = 10

// ErrNotFound is returned by Get and Update when the document does not exist.
var ErrNotFound = apperr.ErrNotFound

// ErrInTooLarge is returned when a membership filter exceeds MaxInValues.
var ErrInTooLarge = fmt.Errorf("membership filter accepts at most %d values", MaxInValues)

// Op is a filter operator.
type Op string

const (
	OpEq Op = "=="
	OpIn Op = "in"
)

// Filter is one "field op value" condition. For OpIn, Value must be a []string.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Eq builds an equality filter.
func Eq(field string, value any) Filter { return Filter{Field: field, Op: OpEq, Value: value} }

// In builds a membership filter.
func In(field string, values []string) Filter { return Filter{Field: field, Op: OpIn, Value: values} }

// Query selects documents from one collection. All filters must match.
// Limit <= 0 means no limit.
type Query struct {
	Collection string
	Filters    []Filter
	Limit      int
}

// Validate checks the query against the store limits shared by every backend.
func (q Query) Validate() error {
	if q.Collection == "" {
		return errors.New("query has no collection")
	}
	for _, f := range q.Filters {
		switch f.Op {
		case OpEq:
		case OpIn:
			vals, ok := f.Value.([]string)
			if !ok {
				return fmt.Errorf("membership filter on %q needs []string, got %T", f.Field, f.Value)
			}
			if len(vals) > MaxInValues {
				return ErrInTooLarge
			}
		default:
			return fmt.Errorf("unsupported operator %q", f.Op)
		}
	}
	return nil
}

// Doc is a stored document: its ID plus its fields as plain Go values
// (string, numbers, bool, time.Time, map[string]any, []any).
type Doc struct {
	ID     string
	Fields map[string]any
}

// Has reports whether the field is present and non-nil.
func (d Doc) Has(key string) bool {
	v, ok := d.Fields[key]
	return ok && v != nil
}

// String returns the first of keys that holds a non-empty value, as text.
func (d Doc) String(keys ...string) string {
	return FirstString(d.Fields, keys...)
}

// Map returns the field as a nested document, if it is one.
func (d Doc) Map(key string) (map[string]any, bool) {
	m, ok := d.Fields[key].(map[string]any)
	return m, ok
}

// Store is the document-store capability.
type Store interface {
	Get(ctx context.Context, collection, id string) (Doc, error)
	Stream(ctx context.Context, collection string) ([]Doc, error)
	Find(ctx context.Context, q Query) ([]Doc, error)
	Create(ctx context.Context, collection, id string, fields map[string]any) (string, error)
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Count(ctx context.Context, collection string) (int64, error)
}

// FirstString returns the first of keys in m that holds a non-empty value,
// rendered as text. Missing keys yield "".
func FirstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := Text(m[k]); s != "" {
			return s
		}
	}
	return ""
}

// Text renders a scalar document value as text. Numbers are written without
// trailing zeros, times as RFC 3339, and nested documents as "".
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return t.String()
	}
	return ""
}

// WithIDs flattens docs into field maps carrying their ID under "id".
func WithIDs(docs []Doc) []map[string]any {
	out := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		m := make(map[string]any, len(d.Fields)+1)
		for k, v := range d.Fields {
			m[k] = v
		}
		m["id"] = d.ID
		out = append(out, m)
	}
	return out
}
