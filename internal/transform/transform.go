// Package transform rewrites identifiers to follow a naming convention.
package transform

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/phobologic/namecheck/internal/model"
)

// ErrInvalidConvention is returned for a convention value outside the
// enumerated set.
var ErrInvalidConvention = errors.New("invalid naming convention")

// Apply returns id rewritten to follow conv. Verbatim identifiers and
// identifiers written with a backslash escape are returned unchanged, as are
// identifiers Value refuses to rewrite. Trivia and location are preserved.
func Apply(id model.Identifier, conv model.NamingConvention) (model.Identifier, error) {
	// int @class = 5;
	if id.Verbatim {
		return id, nil
	}
	// int cl\u0061ss = 5;
	if strings.Contains(id.Text, `\`) {
		return id, nil
	}

	value, err := Value(id.Value, conv)
	if err != nil {
		return id, err
	}
	return id.WithValue(value), nil
}

// Value returns value rewritten to follow conv. Values containing anything
// other than letters, digits and underscores, and values that normalize to
// the empty string, are returned unchanged.
func Value(value string, conv model.NamingConvention) (string, error) {
	var format func([]rune) string
	switch conv {
	case model.LowerCamelCase:
		format = lowerCamel
	case model.UpperCamelCase:
		format = upperCamel
	case model.UnderscoreLowerCamelCase:
		format = underscoreLowerCamel
	case model.InterfacePrefixUpperCamelCase:
		format = interfacePrefixUpperCamel
	default:
		return value, fmt.Errorf("%w: %d", ErrInvalidConvention, int(conv))
	}

	if !Rewritable(value) {
		return value, nil
	}
	normalized := []rune(Normalize(value))
	if len(normalized) == 0 {
		return value, nil
	}
	return format(normalized), nil
}

// Rewritable reports whether value consists only of letters, digits and
// underscores.
func Rewritable(value string) bool {
	for _, r := range value {
		if !isLetterOrDigit(r) && r != '_' {
			return false
		}
	}
	return true
}

// Normalize removes underscores from value, upper-casing the character that
// follows each one. A doubled underscore or a trailing underscore is dropped.
func Normalize(value string) string {
	runes := []rune(value)
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if isLetterOrDigit(r) {
			b.WriteRune(r)
		}
		if r == '_' && i+1 < len(runes) && runes[i+1] != '_' {
			i++
			b.WriteRune(unicode.ToUpper(runes[i]))
		}
	}
	return b.String()
}

func isLetterOrDigit(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// lowerCamel: lowerCamelCase
func lowerCamel(s []rune) string {
	return string(unicode.ToLower(s[0])) + string(s[1:])
}

// upperCamel: UpperCamelCase
func upperCamel(s []rune) string {
	return string(unicode.ToUpper(s[0])) + string(s[1:])
}

// underscoreLowerCamel: _lowerCamelCase. Values starting with an uncased
// character get no prefix.
func underscoreLowerCamel(s []rune) string {
	switch {
	case unicode.IsUpper(s[0]):
		return "_" + string(unicode.ToLower(s[0])) + string(s[1:])
	case unicode.IsLower(s[0]):
		return "_" + string(s)
	default:
		return string(s)
	}
}

// interfacePrefixUpperCamel: IUpperCamelCase
func interfacePrefixUpperCamel(s []rune) string {
	switch {
	// iSomething
	case len(s) >= 2 && s[0] == 'i' && unicode.IsUpper(s[1]):
		return "I" + string(s[1:])
	// Something, something, isomething
	case s[0] != 'I':
		return "I" + string(unicode.ToUpper(s[0])) + string(s[1:])
	// Isomething
	case len(s) >= 2 && unicode.IsLower(s[1]):
		return "I" + string(unicode.ToUpper(s[1])) + string(s[2:])
	default:
		return string(s)
	}
}
