// internal/store/store.go
//
// Persistence contract for Hangman games.
// Implementations live alongside: memory.go (ephemeral) and sqlite.go (durable).

package store

import (
	"context"
	"errors"

	"github.com/robalobadob/hangman/apps/go-server/internal/game"
)

// ErrNotFound is returned by Get when no game has the requested id.
var ErrNotFound = errors.New("game not found")

// Store defines the persistence interface for games.
// Every call is atomic for a single game; nothing spans documents.
type Store interface {
	// Put inserts or replaces a game, keyed by its ID.
	Put(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Game, error)

	// List returns every stored game, oldest first.
	List(ctx context.Context) ([]*game.Game, error)

	// Delete removes a game and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)
}
