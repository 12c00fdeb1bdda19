package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims s and collapses every whitespace run to a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeModel(model string) string {
	return TrimAndNormalize(model)
}

// NormalizePlate upper-cases a registration plate and drops inner whitespace, so
// "ab 123 cd" and "AB123CD" are the same plate.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.ReplaceAll(TrimAndNormalize(plate), " ", ""))
}

// NormalizeLogin trims a login. Case is preserved; logins are case sensitive.
func NormalizeLogin(login string) string {
	return strings.TrimSpace(login)
}
