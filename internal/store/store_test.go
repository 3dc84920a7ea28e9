package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/robalobadob/hangman/apps/go-server/internal/game"
)

var (
	_ Store = (*memory)(nil)
	_ Store = (*SQLite)(nil)
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "hangman.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// held reports how many ids currently have an entry.
func (l *Locks) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// forEachStore runs fn against every Store implementation.
func forEachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("memory", func(t *testing.T) { fn(t, NewMemoryStore()) })
	t.Run("sqlite", func(t *testing.T) { fn(t, openTestSQLite(t)) })
}

func TestStorePutGet(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		g := game.Start("example")
		if err := s.Put(ctx, g); err != nil {
			t.Fatalf("Put: %v", err)
		}
		got, err := s.Get(ctx, g.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if !reflect.DeepEqual(got, g) {
			t.Errorf("Get = %+v, want %+v", got, g)
		}

		next, _ := game.Guess(got, "e")
		if err := s.Put(ctx, next); err != nil {
			t.Fatalf("Put (replace): %v", err)
		}
		got, err = s.Get(ctx, g.ID)
		if err != nil {
			t.Fatalf("Get after replace: %v", err)
		}
		if !reflect.DeepEqual(got.CorrectGuesses, []string{"e"}) {
			t.Errorf("replaced game correct = %v", got.CorrectGuesses)
		}
	})
}

func TestStoreGetMissing(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(missing) err = %v, want ErrNotFound", err)
		}
	})
}

func TestStoreListOrder(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		empty, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if empty == nil || len(empty) != 0 {
			t.Errorf("List on empty store = %#v, want empty slice", empty)
		}

		var ids []string
		for i := 0; i < 3; i++ {
			g := game.Start("cat")
			ids = append(ids, g.ID)
			if err := s.Put(ctx, g); err != nil {
				t.Fatalf("Put: %v", err)
			}
			time.Sleep(2 * time.Millisecond)
		}
		// replacing must not move a game to the end
		first, _ := s.Get(ctx, ids[0])
		first, _ = game.Guess(first, "c")
		if err := s.Put(ctx, first); err != nil {
			t.Fatalf("Put: %v", err)
		}

		all, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("List len = %d, want 3", len(all))
		}
		for i, g := range all {
			if g.ID != ids[i] {
				t.Errorf("List[%d] = %s, want %s", i, g.ID, ids[i])
			}
		}
	})
}

func TestStoreDeleteOnce(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		g := game.Start("cat")
		if err := s.Put(ctx, g); err != nil {
			t.Fatalf("Put: %v", err)
		}
		ok, err := s.Delete(ctx, g.ID)
		if err != nil || !ok {
			t.Fatalf("first Delete = %v, %v; want true", ok, err)
		}
		ok, err = s.Delete(ctx, g.ID)
		if err != nil || ok {
			t.Fatalf("second Delete = %v, %v; want false", ok, err)
		}
		if _, err := s.Get(ctx, g.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get after delete err = %v", err)
		}
	})
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := game.Start("cat")
	_ = s.Put(ctx, g)

	g.DisplayWord[0] = "c"
	got, _ := s.Get(ctx, g.ID)
	if got.DisplayWord[0] != game.Placeholder {
		t.Errorf("stored game aliased the caller's slice")
	}
	got.DisplayWord[1] = "a"
	again, _ := s.Get(ctx, g.ID)
	if again.DisplayWord[1] != game.Placeholder {
		t.Errorf("Get returned shared state")
	}
}

func TestSQLiteRejectsUnknownFields(t *testing.T) {
	s := openTestSQLite(t)
	_, err := s.db.Exec(`INSERT INTO games (game_id, document) VALUES (?, ?)`,
		"odd", `{"game_id":"odd","word":"cat","display_word":["_","_","_"],"correct_guesses":[],"incorrect_guesses":[],"game_over":false,"_id":"x"}`)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := s.Get(context.Background(), "odd"); err == nil {
		t.Errorf("Get accepted a document with unknown fields")
	}
}

func TestSQLiteReopenKeepsGames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hangman.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	g := game.Start("example")
	if err := s.Put(context.Background(), g); err != nil {
		t.Fatalf("Put: %v", err)
	}
	_ = s.Close()

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.Get(context.Background(), g.ID)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.Word != "example" {
		t.Errorf("word = %q", got.Word)
	}
}

func TestLocksSerializeSameID(t *testing.T) {
	l := NewLocks()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock("g1")
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()
	if maxSeen != 1 {
		t.Errorf("max concurrent holders = %d, want 1", maxSeen)
	}
	if n := l.held(); n != 0 {
		t.Errorf("lock entries left = %d, want 0", n)
	}
}

func TestLocksIndependentIDs(t *testing.T) {
	l := NewLocks()
	unlockA := l.Lock("a")
	done := make(chan struct{})
	go func() {
		unlock := l.Lock("b")
		unlock()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on b blocked behind a")
	}
	unlockA()
}

func TestConcurrentGuessesAllLand(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	l := NewLocks()
	g := game.Start("abcdefghij")
	_ = s.Put(ctx, g)

	var wg sync.WaitGroup
	for _, letter := range []string{"a", "b", "c", "d", "e"} {
		wg.Add(1)
		go func(letter string) {
			defer wg.Done()
			unlock := l.Lock(g.ID)
			defer unlock()
			cur, err := s.Get(ctx, g.ID)
			if err != nil {
				t.Errorf("Get: %v", err)
				return
			}
			next, _ := game.Guess(cur, letter)
			if err := s.Put(ctx, next); err != nil {
				t.Errorf("Put: %v", err)
			}
		}(letter)
	}
	wg.Wait()

	final, _ := s.Get(ctx, g.ID)
	if len(final.CorrectGuesses) != 5 {
		t.Errorf("correct = %v, want 5 letters", final.CorrectGuesses)
	}
}
