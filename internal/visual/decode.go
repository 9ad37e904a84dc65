package visual

import (
	"encoding/json"
	"fmt"

	"symbology/internal/enumconv"
)

type typeDecoder struct {
	Type *string `json:"type"`
}

// UnmarshalVariable decodes any visual variable by its type field.
// Unknown tags fail with enumconv.ErrInvalidEnumValue; known tags without an
// implementation fail with ErrUnsupportedVariant.
func UnmarshalVariable(data []byte) (VisualVariable, error) {
	var td typeDecoder
	if err := json.Unmarshal(data, &td); err != nil {
		return nil, err
	}

	if td.Type == nil {
		return nil, ErrMissingType
	}

	t, err := ParseVariableType(*td.Type)
	if err != nil {
		return nil, enumconv.AttachField(err, TypeField)
	}

	switch t {
	case Rotation:
		var rv RotationVariable
		if err := json.Unmarshal(data, &rv); err != nil {
			return nil, err
		}
		return &rv, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVariant, *td.Type)
	}
}

// VariableError reports which element of a visual variable list failed to decode
type VariableError struct {
	Index int
	Err   error
}

func (e *VariableError) Error() string {
	return fmt.Sprintf("visual variable at index %d: %v", e.Index, e.Err)
}

func (e *VariableError) Unwrap() error {
	return e.Err
}

// UnmarshalVariables decodes a JSON array of visual variables.
// A missing or null array yields an empty slice. Element failures are
// returned as *VariableError.
func UnmarshalVariables(data []byte) ([]VisualVariable, error) {
	var raw []json.RawMessage
	if len(data) > 0 {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}

	vars := make([]VisualVariable, 0, len(raw))
	for i, r := range raw {
		v, err := UnmarshalVariable(r)
		if err != nil {
			return nil, &VariableError{Index: i, Err: err}
		}
		vars = append(vars, v)
	}
	return vars, nil
}
