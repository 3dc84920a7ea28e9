// internal/store/sqlite.go
//
// SQLite-backed implementation of the Store interface.
// Responsibilities:
//   - Opening the database file with safe defaults (WAL, busy timeout).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Storing each game as one JSON document keyed by game_id.
//
// Documents are decoded strictly: a row carrying fields the Game type does
// not know about is reported as an error instead of being passed through.

package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/apps/go-server/assets"
	"github.com/robalobadob/hangman/apps/go-server/internal/game"
)

// SQLite is a Store persisting games in a SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) the database at path and
// brings its schema up to date.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db, assets.Migrations()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error { return s.db.Close() }

// Put upserts the game document.
func (s *SQLite) Put(ctx context.Context, g *game.Game) error {
	doc, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", g.ID, err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO games (game_id, document) VALUES (?, ?)
        ON CONFLICT(game_id) DO UPDATE SET
            document   = excluded.document,
            updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`,
		g.ID, string(doc),
	)
	if err != nil {
		return fmt.Errorf("put game %s: %w", g.ID, err)
	}
	return nil
}

// Get loads one game document.
func (s *SQLite) Get(ctx context.Context, id string) (*game.Game, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM games WHERE game_id=?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get game %s: %w", id, err)
	}
	return decodeGame(doc)
}

// List returns all games ordered by creation time.
func (s *SQLite) List(ctx context.Context) ([]*game.Game, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT document FROM games ORDER BY created_at ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	out := []*game.Game{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		g, err := decodeGame(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Delete removes the game document and reports whether a row was removed.
func (s *SQLite) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE game_id=?`, id)
	if err != nil {
		return false, fmt.Errorf("delete game %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// decodeGame parses a stored document, rejecting unknown fields.
func decodeGame(doc string) (*game.Game, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(doc)))
	dec.DisallowUnknownFields()
	var g game.Game
	if err := dec.Decode(&g); err != nil {
		return nil, fmt.Errorf("decode game document: %w", err)
	}
	return &g, nil
}

// openDB opens (and creates if missing) a SQLite database file.
//
// - Ensures parent directory exists for relative paths (e.g. ./data/hangman.db).
// - Configures busy timeout and WAL journaling mode.
func openDB(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies *.sql files from migrations in lexical order.
// Applied file names are recorded in _migrations and skipped next time.
func migrate(db *sql.DB, migrations fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	var files []string
	if err := fs.WalkDir(migrations, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("walk migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(migrations, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}
