// Package inputval validates form and JSON input using struct tags.
//
//	type createDeptInput struct {
//	    Name string `validate:"required,max=120" label:"Department name"`
//	}
//	if res := inputval.Validate(createDeptInput{Name: name}); res.HasErrors() {
//	    renderWithError(res.First())
//	}
//
// Besides the stock validator tags, "txnid" accepts an empty string or a
// 12 to 16 character alphanumeric payment reference.
package inputval

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/tantrafest/tantra/internal/app/system/apperr"
)

// Payment references are the 12 to 16 character alphanumeric IDs UPI apps show.
var transactionIDPattern = regexp.MustCompile(`^[A-Za-z0-9]{12,16}$`)

// IsValidTransactionID reports whether s has the shape of a payment reference.
func IsValidTransactionID(s string) bool {
	return transactionIDPattern.MatchString(s)
}

// TransactionIDMessage is the failure message for a malformed transaction id
// in field.
func TransactionIDMessage(field string) string {
	return fmt.Sprintf("%s must be 12-16 letters or digits.", field)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if l := f.Tag.Get("label"); l != "" {
			return l
		}
		return f.Name
	})
	_ = v.RegisterValidation("txnid", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || IsValidTransactionID(s)
	})
	return v
}

// FieldError is one failed rule, already phrased for display.
type FieldError struct {
	Field   string
	Message string
}

// Result collects the failures of one Validate call in field order.
type Result struct {
	Errors []FieldError
}

func (r Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "" when valid.
func (r Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// Err returns the first failure as an apperr validation error, or nil.
func (r Result) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return apperr.Validation(r.First())
}

// Validate checks s (a struct or pointer to one) against its validate tags.
func Validate(s any) Result {
	err := validate.Struct(s)
	if err == nil {
		return Result{}
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Result{Errors: []FieldError{{Message: err.Error()}}}
	}
	out := Result{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", fe.Field())
	case "txnid":
		return TransactionIDMessage(fe.Field())
	case "numeric":
		return fmt.Sprintf("%s must be a number.", fe.Field())
	}
	return fmt.Sprintf("%s is invalid.", fe.Field())
}
