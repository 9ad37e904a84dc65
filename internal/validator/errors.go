package validator

import (
	"fmt"
	"strings"
)

// FormatError formats a ValidationError into a human-readable error message.
func FormatError(err ValidationError) string {
	location := err.Location()

	// Invalid enum error: "{location}: '{value}' is not valid, must be one of: {allowed}"
	if len(err.Allowed) > 0 {
		return fmt.Sprintf("%s: '%s' is not valid, must be one of: %s",
			location, err.Value, strings.Join(err.Allowed, ", "))
	}

	if location == "" {
		return err.Message
	}
	return fmt.Sprintf("%s: %s", location, err.Message)
}

// FormatErrors formats all validation errors into a slice of human-readable messages.
func FormatErrors(result ValidationResult) []string {
	messages := make([]string, len(result.Errors))
	for i, err := range result.Errors {
		messages[i] = FormatError(err)
	}
	return messages
}

// FormatCIAnnotation formats a validation error as a GitHub Actions annotation
func FormatCIAnnotation(file string, err ValidationError) string {
	return fmt.Sprintf("::error file=%s::%s", file, FormatError(err))
}

// Location renders where the error occurred, e.g. "visualVariables[1].rotationType"
func (e ValidationError) Location() string {
	var sb strings.Builder
	if e.Index >= 0 {
		fmt.Fprintf(&sb, "visualVariables[%d]", e.Index)
	}
	if e.Key != "" {
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(e.Key)
	}
	return sb.String()
}
