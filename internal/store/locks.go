package store

import "sync"

// Locks hands out one mutex per game id. Entries are reference counted and
// dropped once nobody holds or waits on them, so the map only tracks games
// with a guess in flight.
type Locks struct {
	mu    sync.Mutex
	locks map[string]*idLock
}

type idLock struct {
	mu   sync.Mutex
	refs int
}

// NewLocks returns an empty lock table.
func NewLocks() *Locks {
	return &Locks{locks: make(map[string]*idLock)}
}

// Lock blocks until the caller owns id and returns the matching unlock func.
func (l *Locks) Lock(id string) (unlock func()) {
	l.mu.Lock()
	e, ok := l.locks[id]
	if !ok {
		e = &idLock{}
		l.locks[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
