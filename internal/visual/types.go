package visual

import (
	"encoding/json"
	"errors"

	"symbology/internal/enumconv"
)

// TypeField is the wire key carrying the variant discriminant
const TypeField = "type"

var (
	// ErrMissingType is returned when a visual variable has no type field
	ErrMissingType = errors.New("visual variable must contain a type field")

	// ErrTypeMismatch is returned when a variant decodes JSON tagged for another variant
	ErrTypeMismatch = errors.New("visual variable type mismatch")

	// ErrUnsupportedVariant is returned for recognised variants with no implementation
	ErrUnsupportedVariant = errors.New("unsupported visual variable type")
)

// VariableType identifies a variant of the visual variable sum type
type VariableType int

const (
	Color VariableType = iota
	Size
	Opacity
	Rotation
)

var variableTypes = enumconv.NewTable("VisualVariableType",
	enumconv.Entry[VariableType]{Value: Color, Name: "Color"},
	enumconv.Entry[VariableType]{Value: Size, Name: "Size"},
	enumconv.Entry[VariableType]{Value: Opacity, Name: "Opacity"},
	enumconv.Entry[VariableType]{Value: Rotation, Name: "Rotation"},
)

// ParseVariableType parses a wire token such as "rotation"
func ParseVariableType(token string) (VariableType, error) {
	return variableTypes.Parse(token)
}

// VariableTypes returns every variant in declaration order
func VariableTypes() []VariableType {
	return variableTypes.Values()
}

func (t VariableType) String() string {
	return variableTypes.Name(t)
}

func (t VariableType) MarshalText() ([]byte, error) {
	token, err := variableTypes.Token(t)
	if err != nil {
		return nil, err
	}
	return []byte(token), nil
}

func (t *VariableType) UnmarshalText(text []byte) error {
	v, err := variableTypes.Parse(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// VisualVariable is implemented by every visual variable variant.
// A variant always reports the same VariableType regardless of its field values.
type VisualVariable interface {
	VariableType() VariableType
	json.Marshaler
}

// Base holds the fields shared by all visual variable variants
type Base struct {
	Field                Optional[string] // Attribute field the variable reads
	ValueExpression      Optional[string] // Arcade expression used instead of Field
	ValueExpressionTitle Optional[string] // Legend title for ValueExpression
}
