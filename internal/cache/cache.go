// Package cache stores parsed alignment dictionaries in a SQLite database so
// later runs skip the corpus download.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/f3rmion/phonix/internal/align"
)

const schema = `
CREATE TABLE IF NOT EXISTS sources (
	source   TEXT PRIMARY KEY,
	built_at INTEGER NOT NULL,
	entries  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS pairs (
	source   TEXT NOT NULL,
	word     TEXT NOT NULL,
	ord      INTEGER NOT NULL,
	grapheme TEXT NOT NULL,
	phoneme  TEXT NOT NULL,
	PRIMARY KEY (source, word, ord)
);
`

// Store is a SQLite-backed dictionary cache keyed by corpus source.
type Store struct {
	db *sql.DB
}

// Entry describes one cached source.
type Entry struct {
	Source  string
	BuiltAt time.Time
	Entries int
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One writer at a time; SQLite serialises anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the cached dictionary for source. ok is false when the source
// has never been saved.
func (s *Store) Load(ctx context.Context, source string) (*align.Dictionary, bool, error) {
	var entries int
	err := s.db.QueryRowContext(ctx,
		"SELECT entries FROM sources WHERE source = ?", source,
	).Scan(&entries)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading source: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT word, grapheme, phoneme
		FROM pairs
		WHERE source = ?
		ORDER BY word, ord
	`, source)
	if err != nil {
		return nil, false, fmt.Errorf("querying pairs: %w", err)
	}
	defer rows.Close()

	d := align.NewDictionary()
	var (
		word    string
		current string
		a       align.Alignment
	)
	for rows.Next() {
		var p align.Pair
		if err := rows.Scan(&word, &p.Grapheme, &p.Phoneme); err != nil {
			return nil, false, fmt.Errorf("scanning pair: %w", err)
		}
		if word != current && a != nil {
			d.Insert(current, a)
			a = nil
		}
		current = word
		a = append(a, p)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("reading pairs: %w", err)
	}
	if a != nil {
		d.Insert(current, a)
	}

	if d.Len() != entries {
		return nil, false, fmt.Errorf("cache for %s is inconsistent: %d of %d entries", source, d.Len(), entries)
	}
	return d, true, nil
}

// Save replaces the cached dictionary for source in one transaction.
func (s *Store) Save(ctx context.Context, source string, d *align.Dictionary) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if err = deleteSource(ctx, tx, source); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO pairs (source, word, ord, grapheme, phoneme) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	d.Range(func(word string, a align.Alignment) bool {
		for i, p := range a {
			if _, err = stmt.ExecContext(ctx, source, word, i, p.Grapheme, p.Phoneme); err != nil {
				err = fmt.Errorf("inserting %s: %w", word, err)
				return false
			}
		}
		return true
	})
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx,
		"INSERT INTO sources (source, built_at, entries) VALUES (?, ?, ?)",
		source, time.Now().Unix(), d.Len(),
	); err != nil {
		return fmt.Errorf("inserting source: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// Clear removes the cached dictionary for source.
func (s *Store) Clear(ctx context.Context, source string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := deleteSource(ctx, tx, source); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// Sources lists the cached sources.
func (s *Store) Sources(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT source, built_at, entries FROM sources ORDER BY source")
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e     Entry
			built int64
		)
		if err := rows.Scan(&e.Source, &built, &e.Entries); err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}
		e.BuiltAt = time.Unix(built, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}

func deleteSource(ctx context.Context, tx *sql.Tx, source string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM pairs WHERE source = ?", source); err != nil {
		return fmt.Errorf("deleting pairs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM sources WHERE source = ?", source); err != nil {
		return fmt.Errorf("deleting source: %w", err)
	}
	return nil
}
