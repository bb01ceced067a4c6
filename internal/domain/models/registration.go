// internal/domain/models/registration.go
package models

import "time"

// Participant holds the human fields of a registration. Year is kept as text
// because forms submit "2", "II" or "2nd year" interchangeably.
type Participant struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	College string `json:"college"`
	Branch  string `json:"branch"`
	Year    string `json:"year"`
}

// Fields returns the participant as a document sub-object.
func (p Participant) Fields() map[string]any {
	return map[string]any{
		"name":    p.Name,
		"email":   p.Email,
		"phone":   p.Phone,
		"college": p.College,
		"branch":  p.Branch,
		"year":    p.Year,
	}
}

// Registration is one submission of the public registration form. It is written
// once and never updated; repeated submissions create repeated registrations.
type Registration struct {
	ID            string
	EventID       string
	EventName     string // denormalized at submission time
	DeptID        string
	DeptName      string // denormalized at submission time
	Participant   Participant
	TransactionID string
	RegisteredAt  time.Time
	Status        string
}

// RegistrationStatusRegistered is the status every new registration starts in.
const RegistrationStatusRegistered = "registered"
