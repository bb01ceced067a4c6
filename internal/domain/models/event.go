// internal/domain/models/event.go
package models

import "time"

// Event is a single competition or workshop run by a department.
//
// IDs are decimal strings assigned as 1 + the highest existing numeric ID.
// Department holds either a department ID or (older documents) its display name.
type Event struct {
	ID           string      `json:"id"`
	Department   string      `json:"department"`
	DeptID       string      `json:"dept_id,omitempty"` // legacy join key, see /fix_events
	Name         string      `json:"name"`
	Description  string      `json:"description,omitempty"`
	Date         string      `json:"date,omitempty"`
	Time         string      `json:"time,omitempty"`
	Venue        string      `json:"venue,omitempty"`
	ImageURL     string      `json:"image_url,omitempty"`
	PaymentQRURL string      `json:"payment_qr_url,omitempty"`
	Price        string      `json:"price,omitempty"`
	Prize        string      `json:"prize,omitempty"`
	Status       EventStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at,omitempty"`
}

// DepartmentRef returns the department reference, preferring the current
// "department" field over the legacy "dept_id".
func (e Event) DepartmentRef() string {
	if e.Department != "" {
		return e.Department
	}
	return e.DeptID
}
