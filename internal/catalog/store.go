// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog indexes a card database in SQLite so cards can be
// queried by type, aspect, rarity, or text without re-reading the vault.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/cardgrabber/internal/normalize"
	"github.com/pdiddy/cardgrabber/pkg/types"
)

const (
	dbFile = "cards.db"

	defaultMaxResults = 50
)

// Store manages the card index database.
type Store struct {
	db         *sql.DB
	indexDir   string
	maxResults int
}

// NewStore opens or creates the card index at indexDir/cards.db and creates
// the schema if it does not exist.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{
		db:         db,
		indexDir:   cfg.IndexDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS cards (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			aspect TEXT,
			rarity TEXT,
			category TEXT NOT NULL,
			orientation TEXT NOT NULL,
			has_back INTEGER NOT NULL,
			cost TEXT,
			text TEXT,
			back_text TEXT,
			record TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS card_types (
			card_id INTEGER NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
			tag TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cards_category ON cards(category)`,
		`CREATE INDEX IF NOT EXISTS idx_card_types_tag ON card_types(tag)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from an indexing run.
type IngestSummary struct {
	Indexed  int
	Replaced int
}

// Ingest replaces the indexed cards with cards, in one transaction.
// Placeholder records are not indexed.
func (s *Store) Ingest(ctx context.Context, cards []types.Card, w io.Writer) (IngestSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var summary IngestSummary
	if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM cards`).Scan(&summary.Replaced); err != nil {
		return IngestSummary{}, fmt.Errorf("counting cards: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM card_types`); err != nil {
		return IngestSummary{}, fmt.Errorf("clearing card types: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM cards`); err != nil {
		return IngestSummary{}, fmt.Errorf("clearing cards: %w", err)
	}

	cardStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cards (position, name, aspect, rarity, category, orientation,
			has_back, cost, text, back_text, record)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing card insert: %w", err)
	}
	defer cardStmt.Close()

	tagStmt, err := tx.PrepareContext(ctx, `INSERT INTO card_types (card_id, tag) VALUES (?, ?)`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing type insert: %w", err)
	}
	defer tagStmt.Close()

	for i, c := range cards {
		if c.IsPlaceholder {
			continue
		}

		record, err := json.Marshal(c)
		if err != nil {
			return IngestSummary{}, fmt.Errorf("encoding card %s: %w", c.Name, err)
		}
		backText := ""
		if c.BackText != nil {
			backText = *c.BackText
		}

		res, err := cardStmt.ExecContext(ctx,
			i, c.Name, c.Aspect, c.Rarity, string(normalize.Classify(c.Type)),
			string(c.Orientation), c.HasBack, c.Cost, c.Text, backText, string(record),
		)
		if err != nil {
			return IngestSummary{}, fmt.Errorf("inserting card %s: %w", c.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return IngestSummary{}, fmt.Errorf("reading card id: %w", err)
		}

		for _, tag := range c.Type {
			if _, err := tagStmt.ExecContext(ctx, id, strings.ToLower(strings.TrimSpace(tag))); err != nil {
				return IngestSummary{}, fmt.Errorf("inserting type %s for %s: %w", tag, c.Name, err)
			}
		}
		summary.Indexed++
	}

	if err := tx.Commit(); err != nil {
		return IngestSummary{}, fmt.Errorf("committing index: %w", err)
	}

	fmt.Fprintf(w, "indexed: %d cards (replaced %d)\n", summary.Indexed, summary.Replaced)
	return summary, nil
}

// Count returns the number of indexed cards.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM cards`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cards: %w", err)
	}
	return n, nil
}
