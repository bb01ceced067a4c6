// internal/domain/models/exportrow.go
package models

// ExportRow is the flat, fixed-column shape every registration is normalized into
// before it is sorted and rendered. Fields are never absent: anything the source
// document did not carry is the empty string.
type ExportRow struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	College          string `json:"college"`
	Branch           string `json:"branch"`
	Year             string `json:"year"`
	EventName        string `json:"event_name"`
	DeptName         string `json:"dept_name"`
	TransactionID    string `json:"transaction_id"`
	RegistrationDate string `json:"registration_date"`
}

// Column returns the value for a header name, or "" for an unknown column.
func (r ExportRow) Column(header string) string {
	switch header {
	case "name":
		return r.Name
	case "email":
		return r.Email
	case "phone":
		return r.Phone
	case "college":
		return r.College
	case "branch":
		return r.Branch
	case "year":
		return r.Year
	case "event_name":
		return r.EventName
	case "dept_name":
		return r.DeptName
	case "transaction_id":
		return r.TransactionID
	case "registration_date":
		return r.RegistrationDate
	}
	return ""
}
