package enumconv

import (
	"strings"
	"unicode"
)

// Kebab converts an identifier into its kebab-case token.
// "Geographic" becomes "geographic", "ClassBreaks" becomes "class-breaks"
// and "HTTPServer" becomes "http-server". Underscores and spaces become hyphens.
func Kebab(name string) string {
	runes := []rune(name)

	var sb strings.Builder
	sb.Grow(len(name) + 4)

	for i, r := range runes {
		switch {
		case r == '_' || r == ' ' || r == '-':
			if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "-") {
				sb.WriteByte('-')
			}
		case unicode.IsUpper(r):
			if i > 0 && needsBreak(runes, i) && !strings.HasSuffix(sb.String(), "-") {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
		default:
			sb.WriteRune(r)
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}

// needsBreak reports whether the upper-case rune at i starts a new word.
func needsBreak(runes []rune, i int) bool {
	prev := runes[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	// End of an acronym: "HTTPServer" breaks before the "S".
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
