package catalog

import "fmt"

// Kind classifies domain failures so callers can branch without parsing
// messages.
type Kind string

const (
	KindRequiredField     Kind = "required_field"
	KindMaxLengthExceeded Kind = "max_length_exceeded"
	KindMediaNotPresent   Kind = "media_not_present"
)

// Error is the single error type raised by the catalog package.
type Error struct {
	Kind  Kind
	Field string
	Limit int
}

var (
	// ErrRequiredField matches any required-field violation.
	ErrRequiredField = &Error{Kind: KindRequiredField}
	// ErrMaxLengthExceeded matches any length violation.
	ErrMaxLengthExceeded = &Error{Kind: KindMaxLengthExceeded}
	// ErrMediaNotPresent is returned when an encoding transition targets an
	// empty media slot.
	ErrMediaNotPresent = &Error{Kind: KindMediaNotPresent, Field: "Media"}
)

func requiredField(field string) *Error {
	return &Error{Kind: KindRequiredField, Field: field}
}

func maxLengthExceeded(field string, limit int) *Error {
	return &Error{Kind: KindMaxLengthExceeded, Field: field, Limit: limit}
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindRequiredField:
		return fmt.Sprintf("'%s' is required", e.Field)
	case KindMaxLengthExceeded:
		return fmt.Sprintf("'%s' should be less or equal %d characters long", e.Field, e.Limit)
	case KindMediaNotPresent:
		return "there is no media"
	default:
		return fmt.Sprintf("catalog error %s", e.Kind)
	}
}

// Is matches on Kind, and on Field and Limit when the target sets them.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	if t.Field != "" && t.Field != e.Field {
		return false
	}
	return t.Limit == 0 || t.Limit == e.Limit
}

// ErrorKind reports the coarse classification used by hosts: field
// violations are "validation", a missing media slot is "not_found".
func (e *Error) ErrorKind() string {
	if e.Kind == KindMediaNotPresent {
		return "not_found"
	}
	return "validation"
}
