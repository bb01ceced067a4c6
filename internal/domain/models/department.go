// internal/domain/models/department.go
package models

import "time"

// Department is a techfest department (CSE, ECE, ...). Events and registrations
// reference it either by ID or by display name, depending on when they were written.
type Department struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	LogoURL     string    `json:"logo_url,omitempty"`
	QRURL       string    `json:"qr_url,omitempty"` // payment QR shown on the registration form
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// DepartmentLookup maps department IDs to display names.
type DepartmentLookup map[string]string

// NewDepartmentLookup indexes the given departments by ID.
func NewDepartmentLookup(depts []Department) DepartmentLookup {
	lk := make(DepartmentLookup, len(depts))
	for _, d := range depts {
		lk[d.ID] = d.Name
	}
	return lk
}

// Name resolves a department reference. A reference that matches a known ID
// yields that department's name; anything else is assumed to already be a
// display name and is returned unchanged.
func (lk DepartmentLookup) Name(ref string) string {
	if ref == "" {
		return ""
	}
	if name, ok := lk[ref]; ok {
		return name
	}
	return ref
}
