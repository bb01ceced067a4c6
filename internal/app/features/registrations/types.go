// internal/app/features/registrations/types.go
package registrations

import (
	"encoding/json"

	"github.com/tantrafest/tantra/internal/app/store/docstore"
	"github.com/tantrafest/tantra/internal/app/store/queries/exportrows"
	"github.com/tantrafest/tantra/internal/app/system/apperr"
	"github.com/tantrafest/tantra/internal/app/system/inputval"
	"github.com/tantrafest/tantra/internal/app/system/normalize"
	"github.com/tantrafest/tantra/internal/domain/models"
)

var (
	eventIDKeys   = []string{"event_id", "event-id", "eventId"}
	eventNameKeys = []string{"event_name", "event-name", "eventName"}
)

// registerInput defines validation rules for a submission. Labels are the
// canonical JSON keys so clients can match errors to fields.
type registerInput struct {
	EventID       string `validate:"required,max=64" label:"event_id"`
	Name          string `validate:"required,max=200" label:"name"`
	Email         string `validate:"max=254" label:"email"`
	Phone         string `validate:"max=32" label:"phone"`
	College       string `validate:"max=200" label:"college"`
	Branch        string `validate:"max=120" label:"branch"`
	Year          string `validate:"max=32" label:"year"`
	TransactionID string `validate:"txnid" label:"transaction_id"`
}

// submission is a decoded request body in canonical form.
type submission struct {
	EventID       string
	EventName     string
	Participant   models.Participant
	TransactionID string

	// TransactionIDMalformed is set when the transaction id was sent as
	// something other than a string or number.
	TransactionIDMalformed bool
}

// parseSubmission reads a body that may use canonical, hyphenated or camelCase
// keys, as the different versions of the registration form send.
func parseSubmission(body map[string]any) submission {
	p := exportrows.ParticipantFields(body)
	p.Name = normalize.Name(p.Name)
	p.Email = normalize.Email(p.Email)
	p.Phone = normalize.Phone(p.Phone)
	p.College = normalize.Text(p.College)
	p.Branch = normalize.Text(p.Branch)
	p.Year = normalize.Text(p.Year)
	return submission{
		EventID:       normalize.Text(docstore.FirstString(body, eventIDKeys...)),
		EventName:     normalize.Text(docstore.FirstString(body, eventNameKeys...)),
		Participant:   p,
		TransactionID: normalize.Text(exportrows.TransactionID(body)),

		TransactionIDMalformed: !scalarTransactionID(body),
	}
}

// scalarTransactionID reports whether the transaction id, if any, was sent as
// a JSON string or number.
func scalarTransactionID(body map[string]any) bool {
	v, ok := exportrows.RawTransactionID(body)
	if !ok {
		return true
	}
	switch v.(type) {
	case string, json.Number:
		return true
	}
	return false
}

// validate checks the submission against registerInput's rules. A transaction
// id that is not a scalar fails the same way a badly shaped one does.
func (s submission) validate() error {
	if err := inputval.Validate(s.input()).Err(); err != nil {
		return err
	}
	if s.TransactionIDMalformed {
		return apperr.Validation(inputval.TransactionIDMessage("transaction_id"))
	}
	return nil
}

func (s submission) input() registerInput {
	return registerInput{
		EventID:       s.EventID,
		Name:          s.Participant.Name,
		Email:         s.Participant.Email,
		Phone:         s.Participant.Phone,
		College:       s.Participant.College,
		Branch:        s.Participant.Branch,
		Year:          s.Participant.Year,
		TransactionID: s.TransactionID,
	}
}
