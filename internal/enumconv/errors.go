package enumconv

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEnumValue is matched by every InvalidEnumValueError
var ErrInvalidEnumValue = errors.New("invalid enum value")

// InvalidEnumValueError is returned when a token does not name any member of an enumeration
type InvalidEnumValueError struct {
	Enum    string   // The enumeration name (e.g., "RotationType")
	Field   string   // The wire key the value was read from, if known
	Value   string   // The rejected token
	Allowed []string // Valid tokens in declaration order
}

func (e *InvalidEnumValueError) Error() string {
	msg := fmt.Sprintf("invalid %s value %q, must be one of: %s",
		e.Enum, e.Value, strings.Join(e.Allowed, ", "))
	if e.Field != "" {
		return e.Field + ": " + msg
	}
	return msg
}

// Is makes errors.Is(err, ErrInvalidEnumValue) succeed.
func (e *InvalidEnumValueError) Is(target error) bool {
	return target == ErrInvalidEnumValue
}

// WithField returns a copy of the error attributed to the given wire key.
func (e *InvalidEnumValueError) WithField(field string) *InvalidEnumValueError {
	cp := *e
	cp.Field = field
	return &cp
}

// AttachField sets the wire key on err if it is an InvalidEnumValueError.
// Any other error is returned unchanged.
func AttachField(err error, field string) error {
	var enumErr *InvalidEnumValueError
	if errors.As(err, &enumErr) {
		return enumErr.WithField(field)
	}
	return err
}
