// internal/game/engine.go
//
// Core game engine for a single Hangman round.
// Responsibilities:
//   - Create new games with a fully hidden display word.
//   - Validate and apply single-letter guesses (alphabetic, case-insensitive, no repeats).
//   - Track state transitions: playing → won/lost.
//
// The engine performs no I/O. Guess never mutates the game it is given;
// it returns a fresh copy so the caller decides what gets persisted.
package game

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Start constructs a new game for word.
// The word is lowercased; every position starts as Placeholder.
func Start(word string) *Game {
	word = strings.ToLower(word)
	display := make([]string, utf8.RuneCountInString(word))
	for i := range display {
		display[i] = Placeholder
	}
	return &Game{
		ID:               uuid.NewString(),
		Word:             word,
		DisplayWord:      display,
		CorrectGuesses:   []string{},
		IncorrectGuesses: []string{},
	}
}

// Guess applies letter to g and reports the outcome.
//
// Checks run in order and the first failure wins:
//   - nil or finished game → OutcomeNotFound
//   - not exactly one alphabetic character → OutcomeInvalid
//   - letter already tried (either list) → OutcomeDuplicate
//
// On any of those the original g is returned untouched. Otherwise a copy is
// updated and returned with OutcomeAccepted, OutcomeWin or OutcomeLoss.
func Guess(g *Game, letter string) (*Game, Outcome) {
	if g == nil || g.GameOver {
		return g, OutcomeNotFound
	}
	l, ok := NormalizeLetter(letter)
	if !ok {
		return g, OutcomeInvalid
	}
	if slices.Contains(g.CorrectGuesses, l) || slices.Contains(g.IncorrectGuesses, l) {
		return g, OutcomeDuplicate
	}

	next := g.Clone()
	if !strings.Contains(next.Word, l) {
		next.IncorrectGuesses = append(next.IncorrectGuesses, l)
		if len(next.IncorrectGuesses) >= MaxIncorrect {
			next.GameOver = true
			return next, OutcomeLoss
		}
		return next, OutcomeAccepted
	}

	next.CorrectGuesses = append(next.CorrectGuesses, l)
	for i, r := range []rune(next.Word) {
		if string(r) == l && i < len(next.DisplayWord) {
			next.DisplayWord[i] = l
		}
	}
	if revealed(next) {
		next.GameOver = true
		return next, OutcomeWin
	}
	return next, OutcomeAccepted
}

// End reports the outcome of removing a game.
func End(existed bool) Outcome {
	if existed {
		return OutcomeDeleted
	}
	return OutcomeNotFound
}

// NormalizeLetter returns the lowercase form of s when s is exactly one
// alphabetic character.
func NormalizeLetter(s string) (string, bool) {
	if utf8.RuneCountInString(s) != 1 {
		return "", false
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return "", false
	}
	return string(unicode.ToLower(r)), true
}

// revealed reports whether no Placeholder is left in the display word.
func revealed(g *Game) bool {
	return !slices.Contains(g.DisplayWord, Placeholder)
}
