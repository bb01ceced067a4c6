package exportrows

import (
	"github.com/tantrafest/tantra/internal/app/store/docstore"
	"github.com/tantrafest/tantra/internal/domain/models"
)

// Accepted keys per column, most current first. Every schema version of the
// registration site is represented here and nowhere else.
var (
	nameKeys      = []string{"name", "full_name", "fullName", "participant_name", "participant-name"}
	emailKeys     = []string{"email", "participant_email", "participant-email", "user_email"}
	phoneKeys     = []string{"phone", "phone_number", "mobile", "contact", "participant-phone"}
	collegeKeys   = []string{"college", "institution", "participant-college"}
	branchKeys    = []string{"branch", "branch/Class", "class", "participant-branch"}
	yearKeys      = []string{"year", "study_year", "participant-year"}
	txnKeys       = []string{"transaction_id", "transactionId", "transaction-id", "txn_id"}
	regDateKeys   = []string{"registered_at", "registration_date", "created_at", "timestamp"}
	eventNameKeys = []string{"event_name", "event-name"}
	deptNameKeys  = []string{"dept_name", "department_name"}

	legacyEventKeys = []string{"event", "event_name"}
	legacyDeptKeys  = []string{"department", "dept_name"}
)

func participantColumns(row *models.ExportRow, p map[string]any) {
	row.Name = docstore.FirstString(p, nameKeys...)
	row.Email = docstore.FirstString(p, emailKeys...)
	row.Phone = docstore.FirstString(p, phoneKeys...)
	row.College = docstore.FirstString(p, collegeKeys...)
	row.Branch = docstore.FirstString(p, branchKeys...)
	row.Year = docstore.FirstString(p, yearKeys...)
}

// NormalizeRegistration builds the export row for a registration document, its
// resolved participant fields and its event. When an event filter names an
// event that no longer exists, ev is a placeholder whose name is its ID; an
// unfiltered listing only reaches registrations through events that still do.
//
// The event name comes from the event document, falling back to the name
// denormalized onto the registration. The department name prefers the
// registration's denormalized name, then the event's department reference
// resolved through lookup.
func NormalizeRegistration(reg, participant map[string]any, ev models.Event, lookup models.DepartmentLookup) models.ExportRow {
	var row models.ExportRow
	participantColumns(&row, participant)

	row.EventName = ev.Name
	if row.EventName == "" {
		row.EventName = docstore.FirstString(reg, eventNameKeys...)
	}
	row.DeptName = docstore.FirstString(reg, deptNameKeys...)
	if row.DeptName == "" {
		row.DeptName = lookup.Name(ev.DepartmentRef())
	}
	row.TransactionID = docstore.FirstString(reg, txnKeys...)
	if row.TransactionID == "" {
		row.TransactionID = docstore.FirstString(participant, txnKeys...)
	}
	row.RegistrationDate = docstore.FirstString(reg, regDateKeys...)
	return row
}

// NormalizeLegacy builds the export row for a flat registration stored in the
// participants collection. Its department is usually a display name but is
// resolved through lookup in case it holds an ID.
func NormalizeLegacy(doc map[string]any, lookup models.DepartmentLookup) models.ExportRow {
	var row models.ExportRow
	participantColumns(&row, doc)
	row.EventName = docstore.FirstString(doc, legacyEventKeys...)
	row.DeptName = lookup.Name(docstore.FirstString(doc, legacyDeptKeys...))
	row.TransactionID = docstore.FirstString(doc, txnKeys...)
	row.RegistrationDate = docstore.FirstString(doc, regDateKeys...)
	return row
}

// ParticipantFields reads the participant columns out of m using the same
// aliases the export accepts. The registration endpoint uses it so a form
// submitted under any historical key lands in the canonical shape.
func ParticipantFields(m map[string]any) models.Participant {
	var row models.ExportRow
	participantColumns(&row, m)
	return models.Participant{
		Name:    row.Name,
		Email:   row.Email,
		Phone:   row.Phone,
		College: row.College,
		Branch:  row.Branch,
		Year:    row.Year,
	}
}

// TransactionID returns the first transaction id alias present in m.
func TransactionID(m map[string]any) string {
	return docstore.FirstString(m, txnKeys...)
}

// RawTransactionID returns the value stored under the first transaction id
// alias present in m, before any conversion to text.
func RawTransactionID(m map[string]any) (any, bool) {
	for _, k := range txnKeys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}
