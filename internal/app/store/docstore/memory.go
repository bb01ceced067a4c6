package docstore

import (
	"context"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process Store. Documents keep insertion order so results are
// deterministic. It is safe for concurrent use.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]*memCollection

	// OnFind, when set, is called with every query Find executes.
	OnFind func(Query)
	// FailFind, when set, makes Find return its error for matching queries.
	FailFind func(Query) error
}

type memCollection struct {
	order []string
	docs  map[string]map[string]any
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string]*memCollection)}
}

func (m *Memory) coll(name string) *memCollection {
	c, ok := m.collections[name]
	if !ok {
		c = &memCollection{docs: make(map[string]map[string]any)}
		m.collections[name] = c
	}
	return c
}

// Get implements Store.
func (m *Memory) Get(ctx context.Context, collection, id string) (Doc, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.collections[collection]
	if !ok {
		return Doc{}, ErrNotFound
	}
	f, ok := c.docs[id]
	if !ok {
		return Doc{}, ErrNotFound
	}
	return Doc{ID: id, Fields: copyFields(f)}, nil
}

// Stream implements Store.
func (m *Memory) Stream(ctx context.Context, collection string) ([]Doc, error) {
	return m.Find(ctx, Query{Collection: collection})
}

// Find implements Store.
func (m *Memory) Find(ctx context.Context, q Query) ([]Doc, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if m.OnFind != nil {
		m.OnFind(q)
	}
	if m.FailFind != nil {
		if err := m.FailFind(q); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.collections[q.Collection]
	if !ok {
		return nil, nil
	}
	var out []Doc
	for _, id := range c.order {
		f := c.docs[id]
		if !matches(id, f, q.Filters) {
			continue
		}
		out = append(out, Doc{ID: id, Fields: copyFields(f)})
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	return out, nil
}

// Create implements Store. An empty id is replaced with a new UUID; an existing
// id is overwritten in place.
func (m *Memory) Create(ctx context.Context, collection, id string, fields map[string]any) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.coll(collection)
	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	c.docs[id] = copyFields(fields)
	return id, nil
}

// Update implements Store.
func (m *Memory) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.collections[collection]
	if !ok {
		return ErrNotFound
	}
	f, ok := c.docs[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		f[k] = v
	}
	return nil
}

// Count implements Store.
func (m *Memory) Count(ctx context.Context, collection string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.collections[collection]
	if !ok {
		return 0, nil
	}
	return int64(len(c.order)), nil
}

func matches(id string, fields map[string]any, filters []Filter) bool {
	for _, f := range filters {
		v := fields[f.Field]
		if f.Field == "_id" {
			v = id
		}
		switch f.Op {
		case OpEq:
			if !equalValues(v, f.Value) {
				return false
			}
		case OpIn:
			found := false
			for _, want := range f.Value.([]string) {
				if equalValues(v, want) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

// equalValues compares like Mongo does for the types the app stores: numbers by
// value, everything else by deep equality. A string never equals a number.
func equalValues(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func copyFields(f map[string]any) map[string]any {
	out := make(map[string]any, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
