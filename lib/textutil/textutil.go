package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// RemoveSpaces drops every whitespace rune, including non-breaking spaces.
func RemoveSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// CollapseSpaces trims the string and replaces inner whitespace runs with a single space.
func CollapseSpaces(s string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(s), " ")
}

// Digits keeps only the ASCII digits of s.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// IsDigits reports whether s is non-empty and made only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// french locale groups thousands with a space, a non-breaking space or a narrow no-break space
var thousandsRegex = regexp.MustCompile(`(\d)[ \x{00a0}\x{202f}](\d{3})`)

// RemoveThousandsSeparators turns "1 234 567,50" into "1234567,50".
func RemoveThousandsSeparators(s string) string {
	for {
		next := thousandsRegex.ReplaceAllString(s, "${1}${2}")
		if next == s {
			return next
		}
		s = next
	}
}
