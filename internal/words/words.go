// internal/words/words.go
//
// Supplies the secret word new games are started with.
//
// Constraints:
//   • Words must be non-empty and purely alphabetic.
//   • Words are normalized to lowercase.
//
// There is no dictionary or random selection: a Source hands out the word
// it was configured with. Anything smarter can implement Source later.

package words

import (
	"errors"
	"strings"
	"unicode"
)

// Default is the word used when none is configured.
const Default = "example"

// ErrInvalidWord is returned by Normalize for empty or non-alphabetic input.
var ErrInvalidWord = errors.New("words: word must be non-empty and alphabetic")

// Source returns the word for the next game.
type Source interface {
	Next() string
}

// Fixed is a Source that always returns the same word.
type Fixed string

// Next implements Source.
func (f Fixed) Next() string { return string(f) }

// NewFixed validates w and returns a Source for it.
func NewFixed(w string) (Fixed, error) {
	n, err := Normalize(w)
	if err != nil {
		return "", err
	}
	return Fixed(n), nil
}

// Normalize trims and lowercases w, rejecting anything that is not letters only.
func Normalize(w string) (string, error) {
	w = strings.ToLower(strings.TrimSpace(w))
	if w == "" || !isAlpha(w) {
		return "", ErrInvalidWord
	}
	return w, nil
}

// isAlpha reports whether s consists only of letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
