package enumconv

import "fmt"

// Entry binds an enumeration value to its Go identifier name
type Entry[T comparable] struct {
	Value T
	Name  string
}

// Table converts an enumeration to and from kebab-case tokens.
// Entries keep their declaration order.
type Table[T comparable] struct {
	enum    string
	entries []Entry[T]
	tokens  []string
}

// NewTable builds a Table for the named enumeration.
// It panics on duplicate values or tokens, which are programming errors.
func NewTable[T comparable](enum string, entries ...Entry[T]) *Table[T] {
	t := &Table[T]{
		enum:    enum,
		entries: entries,
		tokens:  make([]string, len(entries)),
	}

	seenValues := make(map[T]bool, len(entries))
	seenTokens := make(map[string]bool, len(entries))
	for i, e := range entries {
		token := Kebab(e.Name)
		if seenValues[e.Value] {
			panic(fmt.Sprintf("enumconv: duplicate %s value for %s", enum, e.Name))
		}
		if seenTokens[token] {
			panic(fmt.Sprintf("enumconv: duplicate %s token %q", enum, token))
		}
		seenValues[e.Value] = true
		seenTokens[token] = true
		t.tokens[i] = token
	}

	return t
}

// Enum returns the enumeration name
func (t *Table[T]) Enum() string {
	return t.enum
}

// Token returns the kebab-case token for v.
// Undeclared values fail with an InvalidEnumValueError.
func (t *Table[T]) Token(v T) (string, error) {
	for i, e := range t.entries {
		if e.Value == v {
			return t.tokens[i], nil
		}
	}
	return "", t.invalid(fmt.Sprintf("%#v", v))
}

// Name returns the Go identifier name for v, or a placeholder for undeclared values.
// The placeholder formats v with %#v and never calls v.String.
func (t *Table[T]) Name(v T) string {
	for _, e := range t.entries {
		if e.Value == v {
			return e.Name
		}
	}
	return fmt.Sprintf("%s(%#v)", t.enum, v)
}

// Parse returns the value whose token equals token exactly.
func (t *Table[T]) Parse(token string) (T, error) {
	for i, tok := range t.tokens {
		if tok == token {
			return t.entries[i].Value, nil
		}
	}
	var zero T
	return zero, t.invalid(token)
}

// Values returns all values in declaration order
func (t *Table[T]) Values() []T {
	values := make([]T, len(t.entries))
	for i, e := range t.entries {
		values[i] = e.Value
	}
	return values
}

// Tokens returns all tokens in declaration order
func (t *Table[T]) Tokens() []string {
	tokens := make([]string, len(t.tokens))
	copy(tokens, t.tokens)
	return tokens
}

func (t *Table[T]) invalid(value string) *InvalidEnumValueError {
	return &InvalidEnumValueError{
		Enum:    t.enum,
		Value:   value,
		Allowed: t.Tokens(),
	}
}
