// internal/game/types.go
//
// Core type definitions for the Hangman game engine.
// Defines:
//   - Game: state for a single in-progress or finished round.
//   - Outcome: discrete result of a guess or delete.

package game

const (
	// Placeholder marks a letter position that has not been revealed yet.
	Placeholder = "_"

	// MaxIncorrect is the number of distinct wrong letters that ends a game.
	MaxIncorrect = 6
)

// Game holds the state of a single Hangman round.
// JSON field names are the persisted document shape.
type Game struct {
	ID               string   `json:"game_id"`           // Opaque identifier (UUIDv4), store key.
	Word             string   `json:"word"`              // The secret word (always lowercase).
	DisplayWord      []string `json:"display_word"`      // One entry per letter: the letter or Placeholder.
	CorrectGuesses   []string `json:"correct_guesses"`   // Distinct letters found in Word, in guess order.
	IncorrectGuesses []string `json:"incorrect_guesses"` // Distinct letters absent from Word, in guess order.
	GameOver         bool     `json:"game_over"`         // Set once on win or loss, never cleared.
}

// Clone returns a deep copy of g. A nil game clones to nil.
func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	c := *g
	c.DisplayWord = append([]string{}, g.DisplayWord...)
	c.CorrectGuesses = append([]string{}, g.CorrectGuesses...)
	c.IncorrectGuesses = append([]string{}, g.IncorrectGuesses...)
	return &c
}

// Outcome is the result of a guess or delete operation.
type Outcome string

const (
	OutcomeAccepted  Outcome = "accepted"
	OutcomeWin       Outcome = "win"
	OutcomeLoss      Outcome = "loss"
	OutcomeDeleted   Outcome = "deleted"
	OutcomeDuplicate Outcome = "duplicate_guess"
	OutcomeInvalid   Outcome = "invalid_guess"

	// OutcomeNotFound covers both a missing game and a game that is already over.
	OutcomeNotFound Outcome = "not_found"
)

// Message returns the human readable text sent to clients for o.
// Duplicate guesses embed the letter, so they are formatted by the caller.
func (o Outcome) Message() string {
	switch o {
	case OutcomeAccepted:
		return "Guess processed successfully"
	case OutcomeWin:
		return "Congratulations! You guessed the word."
	case OutcomeLoss:
		return "Game over! You reached the maximum incorrect guesses."
	case OutcomeDeleted:
		return "Hangman game deleted successfully"
	case OutcomeInvalid:
		return "Invalid guess, please provide a single letter"
	case OutcomeNotFound:
		return "Game not found or already over"
	}
	return string(o)
}
