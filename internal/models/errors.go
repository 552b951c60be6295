package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPartnerNotFound is wrapped by StoreError when a row does not exist
	ErrPartnerNotFound = errors.New("partner not found")

	// ErrStageInUse matches any *StageInUseError via errors.Is
	ErrStageInUse = errors.New("stage is in use")
)

// ValidationError is a field-scoped form error. It never reaches the store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// FieldErrors collects the ValidationErrors contained in err, keyed by field.
// Works on joined errors as produced by errors.Join.
func FieldErrors(err error) map[string]string {
	out := make(map[string]string)
	collectFieldErrors(err, out)
	return out
}

func collectFieldErrors(err error, out map[string]string) {
	if err == nil {
		return
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			collectFieldErrors(e, out)
		}
		return
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		if _, exists := out[ve.Field]; !exists {
			out[ve.Field] = ve.Message
		}
	}
}

// IsValidation reports whether err contains at least one ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StoreError reports a failed record store operation. The message is meant
// for the user; no automatic retry happens at the UI layer.
type StoreError struct {
	Op      string // list, get, insert, update, delete
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("%s partner: %s", e.Op, msg)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err for operation op, using err's text as the message.
func NewStoreError(op string, err error) *StoreError {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &StoreError{Op: op, Message: msg, Err: err}
}

// IsNotFound reports whether err signals a missing partner.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPartnerNotFound)
}

// StageInUseError is returned when removing a stage that still has partners.
type StageInUseError struct {
	Stage   string
	Members int
}

func (e *StageInUseError) Error() string {
	noun := "partners"
	if e.Members == 1 {
		noun = "partner"
	}
	return fmt.Sprintf("stage %q still has %d %s", e.Stage, e.Members, noun)
}

func (e *StageInUseError) Is(target error) bool {
	return target == ErrStageInUse
}

// ParseError is returned when a row from the store does not match the
// partner schema.
type ParseError struct {
	Field  string
	Reason string
	Raw    string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse partner")
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Raw != "" {
		b.WriteString(" (")
		b.WriteString(e.Raw)
		b.WriteString(")")
	}
	return b.String()
}
