package pvmgen

import (
	"strings"
	"unicode"
)

// Casing selects the target shape for a normalized identifier.
type Casing uint8

const (
	// Snake produces "my_function".
	Snake Casing = iota

	// Pascal produces "MyFunction".
	Pascal

	// UpperSnake produces "MY_FUNCTION", used for generated constants.
	UpperSnake

	// Kebab produces "my-function", used for project and file names.
	Kebab
)

// Normalize converts a free-form ABI name into the requested casing.
//
// Words are split on runs of non-alphanumeric characters and on
// lowercase-to-uppercase transitions, then rejoined per the casing rule.
// Normalize is idempotent: feeding its output back with the same casing
// yields an identical string.
//
// The result is always a legal identifier: empty input yields "_", and a
// leading digit is prefixed with "_".
func Normalize(name string, c Casing) string {
	words := splitWords(name)
	if len(words) == 0 {
		return "_"
	}

	var out string
	switch c {
	case Pascal:
		parts := make([]string, len(words))
		for i, w := range words {
			parts[i] = titleWord(w)
		}
		out = strings.Join(parts, "")
	case UpperSnake:
		parts := make([]string, len(words))
		for i, w := range words {
			parts[i] = strings.ToUpper(w)
		}
		out = strings.Join(parts, "_")
	case Kebab:
		parts := make([]string, len(words))
		for i, w := range words {
			parts[i] = strings.ToLower(w)
		}
		out = strings.Join(parts, "-")
	default: // Snake
		parts := make([]string, len(words))
		for i, w := range words {
			parts[i] = strings.ToLower(w)
		}
		out = strings.Join(parts, "_")
	}

	if unicode.IsDigit([]rune(out)[0]) {
		out = "_" + out
	}
	return out
}

// splitWords breaks a name at non-alphanumeric runs and at
// lowercase-to-uppercase transitions.
func splitWords(name string) []string {
	var words []string
	var cur []rune
	var prev rune

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	for _, r := range name {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsLower(prev) && unicode.IsUpper(r):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
		prev = r
	}
	flush()
	return words
}

// titleWord uppercases the first rune of a word and lowercases the rest.
func titleWord(w string) string {
	runes := []rune(strings.ToLower(w))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
