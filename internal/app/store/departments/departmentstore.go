// internal/app/store/departments/departmentstore.go
package departmentstore

import (
	"context"
	"strings"
	"time"

	"github.com/tantrafest/tantra/internal/app/store/docstore"
	"github.com/tantrafest/tantra/internal/app/system/apperr"
	"github.com/tantrafest/tantra/internal/domain/models"
)

// Collection holds department documents.
const Collection = "departments"

type Store struct {
	ds docstore.Store
}

func New(ds docstore.Store) *Store {
	return &Store{ds: ds}
}

// Create stores a new department under a generated ID.
func (s *Store) Create(ctx context.Context, d models.Department) (models.Department, error) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return models.Department{}, apperr.Validation("Department name is required.")
	}
	d.CreatedAt = time.Now().UTC()
	id, err := s.ds.Create(ctx, Collection, "", map[string]any{
		"name":        d.Name,
		"description": d.Description,
		"logo_url":    d.LogoURL,
		"qr_url":      d.QRURL,
		"created_at":  d.CreatedAt,
	})
	if err != nil {
		return models.Department{}, apperr.Store("create", Collection, err)
	}
	d.ID = id
	return d, nil
}

func (s *Store) Get(ctx context.Context, id string) (models.Department, error) {
	doc, err := s.ds.Get(ctx, Collection, id)
	if err != nil {
		return models.Department{}, apperr.Store("get", Collection, err)
	}
	return FromDoc(doc), nil
}

// List returns every department in store order.
func (s *Store) List(ctx context.Context) ([]models.Department, error) {
	docs, err := s.ds.Stream(ctx, Collection)
	if err != nil {
		return nil, apperr.Store("stream", Collection, err)
	}
	out := make([]models.Department, 0, len(docs))
	for _, d := range docs {
		out = append(out, FromDoc(d))
	}
	return out, nil
}

// Lookup loads the ID to name index used to resolve department references.
func (s *Store) Lookup(ctx context.Context) (models.DepartmentLookup, error) {
	depts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return models.NewDepartmentLookup(depts), nil
}

// Documents returns every department as its raw fields with "id" merged in,
// for the public site's JSON feed.
func (s *Store) Documents(ctx context.Context) ([]map[string]any, error) {
	docs, err := s.ds.Stream(ctx, Collection)
	if err != nil {
		return nil, apperr.Store("stream", Collection, err)
	}
	return docstore.WithIDs(docs), nil
}

// FromDoc decodes a department document.
func FromDoc(d docstore.Doc) models.Department {
	dept := models.Department{
		ID:          d.ID,
		Name:        d.String("name"),
		Description: d.String("description"),
		LogoURL:     d.String("logo_url", "logo"),
		QRURL:       d.String("qr_url", "payment_qr_url"),
	}
	if t, ok := d.Fields["created_at"].(time.Time); ok {
		dept.CreatedAt = t
	}
	return dept
}
