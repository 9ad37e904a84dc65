package validator

import (
	"errors"

	"symbology/internal/definition"
	"symbology/internal/enumconv"
	"symbology/internal/visual"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Index   int      // Visual variable index, or -1 for the definition itself
	Key     string   // The wire key (e.g., "rotationType")
	Message string   // Human-readable error message
	Value   string   // The invalid value (if present)
	Allowed []string // For enum errors, the allowed values
}

// ValidationResult contains all validation outcomes.
// Warnings never make a result invalid.
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []ValidationError
}

// Validate checks a parsed definition for variables the mapping engine cannot drive.
// It collects every finding rather than stopping at the first one.
// Axis is not checked against a list of names.
func Validate(def definition.Definition) ValidationResult {
	var errs, warnings []ValidationError

	if len(def.VisualVariables) == 0 {
		warnings = append(warnings, ValidationError{
			Index:   -1,
			Key:     "visualVariables",
			Message: "no visual variables defined",
		})
	}

	for i, v := range def.VisualVariables {
		switch vv := v.(type) {
		case *visual.RotationVariable:
			if !vv.Field.IsSet() && !vv.ValueExpression.IsSet() {
				warnings = append(warnings, ValidationError{
					Index:   i,
					Key:     "field",
					Message: "neither field nor valueExpression is set",
				})
			}
			if vv.ValueExpressionTitle.IsSet() && !vv.ValueExpression.IsSet() {
				errs = append(errs, ValidationError{
					Index:   i,
					Key:     "valueExpressionTitle",
					Message: "requires valueExpression",
				})
			}
		}
	}

	return ValidationResult{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

// FromError converts a definition parse error into a ValidationError
func FromError(err error) ValidationError {
	verr := ValidationError{
		Index:   -1,
		Message: err.Error(),
	}

	var varErr *visual.VariableError
	if errors.As(err, &varErr) {
		verr.Index = varErr.Index
		verr.Message = varErr.Err.Error()
	}

	var enumErr *enumconv.InvalidEnumValueError
	if errors.As(err, &enumErr) {
		verr.Key = enumErr.Field
		verr.Message = "invalid enum value"
		verr.Value = enumErr.Value
		verr.Allowed = enumErr.Allowed
	}

	return verr
}
