package visual

import (
	"encoding/json"
	"fmt"

	"symbology/internal/enumconv"
)

// RotationType defines the origin and direction of rotation
type RotationType int

const (
	// Geographic rotates clockwise from north
	Geographic RotationType = iota
	// Arithmetic rotates counter-clockwise from east
	Arithmetic
)

var rotationTypes = enumconv.NewTable("RotationType",
	enumconv.Entry[RotationType]{Value: Geographic, Name: "Geographic"},
	enumconv.Entry[RotationType]{Value: Arithmetic, Name: "Arithmetic"},
)

// ParseRotationType parses a wire token such as "geographic"
func ParseRotationType(token string) (RotationType, error) {
	return rotationTypes.Parse(token)
}

// RotationTypes returns every rotation type in declaration order
func RotationTypes() []RotationType {
	return rotationTypes.Values()
}

func (r RotationType) String() string {
	return rotationTypes.Name(r)
}

func (r RotationType) MarshalText() ([]byte, error) {
	token, err := rotationTypes.Token(r)
	if err != nil {
		return nil, err
	}
	return []byte(token), nil
}

func (r *RotationType) UnmarshalText(text []byte) error {
	v, err := rotationTypes.Parse(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// RotationVariable rotates marker and text symbols by a field value or expression.
// Axis only applies in 3D scene views.
type RotationVariable struct {
	Base
	Axis         Optional[string]
	RotationType Optional[RotationType]
}

// NewRotationVariable returns a rotation variable with every optional field unset
func NewRotationVariable() *RotationVariable {
	return &RotationVariable{}
}

func (r RotationVariable) VariableType() VariableType {
	return Rotation
}

func (r RotationVariable) MarshalJSON() ([]byte, error) {
	e := rotationEncoder{
		Type:                 Rotation,
		Field:                r.Field.Ptr(),
		ValueExpression:      r.ValueExpression.Ptr(),
		ValueExpressionTitle: r.ValueExpressionTitle.Ptr(),
		Axis:                 r.Axis.Ptr(),
		RotationType:         r.RotationType.Ptr(),
	}
	return json.Marshal(&e)
}

func (r *RotationVariable) UnmarshalJSON(data []byte) error {
	var d rotationDecoder
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}

	if d.Type != nil {
		t, err := ParseVariableType(*d.Type)
		if err != nil {
			return enumconv.AttachField(err, TypeField)
		}
		if t != Rotation {
			return fmt.Errorf("%w: expected %v but got %v", ErrTypeMismatch, Rotation, t)
		}
	}

	rv := RotationVariable{
		Base: Base{
			Field:                FromPtr(d.Field),
			ValueExpression:      FromPtr(d.ValueExpression),
			ValueExpressionTitle: FromPtr(d.ValueExpressionTitle),
		},
		Axis: FromPtr(d.Axis),
	}

	if d.RotationType != nil {
		rt, err := ParseRotationType(*d.RotationType)
		if err != nil {
			return enumconv.AttachField(err, "rotationType")
		}
		rv.RotationType.Set(rt)
	}

	*r = rv
	return nil
}

type rotationEncoder struct {
	Type                 VariableType  `json:"type"`
	Field                *string       `json:"field,omitempty"`
	ValueExpression      *string       `json:"valueExpression,omitempty"`
	ValueExpressionTitle *string       `json:"valueExpressionTitle,omitempty"`
	Axis                 *string       `json:"axis,omitempty"`
	RotationType         *RotationType `json:"rotationType,omitempty"`
}

// rotationDecoder reads enum fields as strings so errors can name the offending key.
type rotationDecoder struct {
	Type                 *string `json:"type"`
	Field                *string `json:"field"`
	ValueExpression      *string `json:"valueExpression"`
	ValueExpressionTitle *string `json:"valueExpressionTitle"`
	Axis                 *string `json:"axis"`
	RotationType         *string `json:"rotationType"`
}
