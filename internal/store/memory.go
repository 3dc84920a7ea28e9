// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used in development/testing, or when durability is not required.
//
// Characteristics:
//   - Stores copies of *game.Game keyed by ID in a map; callers never share state with the map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Insertion order is remembered so List is stable.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sort"
	"sync"

	"github.com/robalobadob/hangman/apps/go-server/internal/game"
)

type memEntry struct {
	seq  uint64
	game *game.Game
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex         // guards games and seq
	games map[string]memEntry // keyed by Game.ID
	seq   uint64
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]memEntry)}
}

// Put adds or replaces the game, keeping the original insertion slot on replace.
func (m *memory) Put(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.games[g.ID]
	if !ok {
		m.seq++
		e.seq = m.seq
	}
	e.game = g.Clone()
	m.games[g.ID] = e
	return nil
}

// Get looks up a game by ID.
func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.games[id]; ok {
		return e.game.Clone(), nil
	}
	return nil, ErrNotFound
}

// List returns copies of all games in insertion order.
func (m *memory) List(ctx context.Context) ([]*game.Game, error) {
	m.mu.RLock()
	entries := make([]memEntry, 0, len(m.games))
	for _, e := range m.games {
		entries = append(entries, e)
	}
	m.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	out := make([]*game.Game, len(entries))
	for i, e := range entries {
		out[i] = e.game.Clone()
	}
	return out, nil
}

// Delete removes the game if present.
func (m *memory) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return false, nil
	}
	delete(m.games, id)
	return true, nil
}
