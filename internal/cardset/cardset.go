// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cardset builds the card collection from a vault of notes and
// persists it as the JSON card database read by the rendering stage.
package cardset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/cardgrabber/internal/logger"
	"github.com/pdiddy/cardgrabber/internal/normalize"
	"github.com/pdiddy/cardgrabber/internal/note"
	"github.com/pdiddy/cardgrabber/pkg/types"
)

// BuildResult holds the outcome of an extraction run.
type BuildResult struct {
	Extracted int
	Warned    int
	Skipped   int
}

// Total returns the number of notes processed.
func (r BuildResult) Total() int {
	return r.Extracted + r.Skipped
}

// HasSkips reports whether any note was left out of the collection.
func (r BuildResult) HasSkips() bool {
	return r.Skipped > 0
}

// NoteError identifies the note that aborted a strict run.
type NoteError struct {
	Path string
	Err  error
}

func (e *NoteError) Error() string {
	return fmt.Sprintf("note %s: %v", e.Path, e.Err)
}

func (e *NoteError) Unwrap() error { return e.Err }

// CardsRoot returns the directory searched for notes.
func CardsRoot(cfg types.ExtractConfig) string {
	dir := cfg.CardsDir
	if dir == "" {
		dir = types.DefaultCardsDir
	}
	return filepath.Join(cfg.VaultPath, dir)
}

// Build reads every note under the configured cards directory, normalizes
// it, and returns the cards in discovery order. Per-note status lines and a
// summary are written to w.
//
// An unreadable note is skipped and counted unless cfg.Strict is set, in
// which case Build stops and returns a *NoteError naming the file.
func Build(ctx context.Context, cfg types.ExtractConfig, n *normalize.Normalizer, w io.Writer) ([]types.Card, BuildResult, error) {
	log := logger.NewLogger("cardset")
	if n == nil {
		n = normalize.FromConfig(cfg)
	}

	root := CardsRoot(cfg)
	paths, err := note.Discover(root)
	if err != nil {
		return nil, BuildResult{}, err
	}
	log.Debugw("discovered notes", "root", root, "count", len(paths))

	var result BuildResult
	cards := make([]types.Card, 0, len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return cards, result, err
		}

		raw, err := note.Read(path)
		if err != nil {
			if cfg.Strict {
				return cards, result, &NoteError{Path: path, Err: err}
			}
			log.Warnw("skipping note", "path", path, "err", err)
			fmt.Fprintf(w, "skipped:   %s (%v)\n", path, err)
			result.Skipped++
			continue
		}

		card, err := n.Normalize(raw, note.Stem(path))
		if err != nil {
			// Normalization errors never drop the card.
			log.Warnw("degraded card", "path", path, "err", err)
			fmt.Fprintf(w, "warning:   %s: %v\n", path, err)
			result.Warned++
		}

		cards = append(cards, card)
		result.Extracted++
		fmt.Fprintf(w, "extracted: %s\n", path)
	}

	fmt.Fprintf(w, "\nBuild summary: %d extracted, %d skipped, %d warnings (total: %d)\n",
		result.Extracted, result.Skipped, result.Warned, result.Total())
	return cards, result, nil
}

// WriteJSON writes cards to path as an indented UTF-8 JSON array. Non-ASCII
// text is written as-is and HTML characters are not escaped.
func WriteJSON(path string, cards []types.Card) error {
	if cards == nil {
		cards = []types.Card{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cards); err != nil {
		return fmt.Errorf("marshaling cards: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing card database: %w", err)
	}
	return nil
}

// ReadJSON loads a card database written by WriteJSON.
func ReadJSON(path string) ([]types.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading card database: %w", err)
	}
	var cards []types.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("parsing card database %s: %w", path, err)
	}
	if cards == nil {
		return nil, errors.New("card database is not a JSON array")
	}
	return cards, nil
}
