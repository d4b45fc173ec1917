// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sheet splits a card collection into fixed-size pages for printing.
// Every page holds exactly the page size of records; the last page is padded
// with placeholder cards so renderers can use a constant grid.
package sheet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/cardgrabber/pkg/types"
)

// ErrInvalidPageSize is returned for a page size below one.
var ErrInvalidPageSize = errors.New("page size must be positive")

// Page is one printed sheet of cards.
type Page struct {
	Number int          `json:"number" yaml:"number"`
	Cards  []types.Card `json:"cards" yaml:"cards"`
}

// Padding returns the number of placeholder records on the page.
func (p Page) Padding() int {
	n := 0
	for _, c := range p.Cards {
		if c.IsPlaceholder {
			n++
		}
	}
	return n
}

// Layout is the handoff document for the renderer: the front sheets of every
// card and the back sheets of the double-sided ones.
type Layout struct {
	PageSize int    `json:"page_size" yaml:"page_size"`
	Fronts   []Page `json:"fronts" yaml:"fronts"`
	Backs    []Page `json:"backs" yaml:"backs"`
}

// Placeholder returns a blank card with the same shape as a real one.
func Placeholder() types.Card {
	return types.Card{
		Type:          []string{},
		Image:         types.DefaultImage,
		Orientation:   types.Portrait,
		IsPlaceholder: true,
	}
}

// Paginate groups cards into consecutive pages of pageSize in input order.
// The final page is padded with placeholders. No cards yields no pages.
func Paginate(cards []types.Card, pageSize int) ([]Page, error) {
	if pageSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageSize, pageSize)
	}

	pages := make([]Page, 0, (len(cards)+pageSize-1)/pageSize)
	for start := 0; start < len(cards); start += pageSize {
		end := min(start+pageSize, len(cards))

		page := Page{
			Number: len(pages) + 1,
			Cards:  make([]types.Card, 0, pageSize),
		}
		page.Cards = append(page.Cards, cards[start:end]...)
		for len(page.Cards) < pageSize {
			page.Cards = append(page.Cards, Placeholder())
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// Backs returns the double-sided cards in collection order.
func Backs(cards []types.Card) []types.Card {
	backs := make([]types.Card, 0)
	for _, c := range cards {
		if c.HasBack {
			backs = append(backs, c)
		}
	}
	return backs
}

// NewLayout paginates the fronts of all cards and the backs of the
// double-sided cards.
func NewLayout(cards []types.Card, pageSize int) (Layout, error) {
	fronts, err := Paginate(cards, pageSize)
	if err != nil {
		return Layout{}, err
	}
	backs, err := Paginate(Backs(cards), pageSize)
	if err != nil {
		return Layout{}, err
	}
	return Layout{PageSize: pageSize, Fronts: fronts, Backs: backs}, nil
}

// WriteLayout writes the layout to path as indented JSON.
func WriteLayout(path string, layout Layout) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(layout); err != nil {
		return fmt.Errorf("marshaling layout: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating layout directory: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// ReadLayout loads a layout written by WriteLayout.
func ReadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("reading layout: %w", err)
	}
	var layout Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		return Layout{}, fmt.Errorf("parsing layout %s: %w", path, err)
	}
	return layout, nil
}
