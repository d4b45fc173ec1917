// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cardgrabber/pkg/types"
)

// QueryOptions holds parameters for card queries. Empty fields do not filter.
type QueryOptions struct {
	// Text matches a substring of the name, front text, or back text.
	Text string

	// Type matches a type tag, case-insensitively.
	Type string

	// Category matches the classified category.
	Category types.Category

	// Aspect and Rarity match exactly, case-insensitively.
	Aspect string
	Rarity string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Text == "" && q.Type == "" && q.Category == "" && q.Aspect == "" && q.Rarity == ""
}

// Retrieve returns indexed cards matching opts in collection order.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]types.Card, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)

	qb.WriteString(`SELECT c.record FROM cards c WHERE 1=1`)

	if opts.Text != "" {
		like := "%" + escapeLike(opts.Text) + "%"
		qb.WriteString(` AND (c.name LIKE ? ESCAPE '\' OR c.text LIKE ? ESCAPE '\' OR c.back_text LIKE ? ESCAPE '\')`)
		args = append(args, like, like, like)
	}

	if opts.Type != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM card_types t WHERE t.card_id = c.id AND t.tag = ?)`)
		args = append(args, strings.ToLower(strings.TrimSpace(opts.Type)))
	}

	if opts.Category != "" {
		qb.WriteString(` AND c.category = ?`)
		args = append(args, string(opts.Category))
	}

	if opts.Aspect != "" {
		qb.WriteString(` AND c.aspect = ? COLLATE NOCASE`)
		args = append(args, opts.Aspect)
	}

	if opts.Rarity != "" {
		qb.WriteString(` AND c.rarity = ? COLLATE NOCASE`)
		args = append(args, opts.Rarity)
	}

	qb.WriteString(` ORDER BY c.position LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying card index: %w", err)
	}
	defer rows.Close()

	var results []types.Card
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		var c types.Card
		if err := json.Unmarshal([]byte(record), &c); err != nil {
			return nil, fmt.Errorf("decoding card record: %w", err)
		}
		results = append(results, c)
	}

	return results, rows.Err()
}

const exportLimit = 100000

// ExportYAML writes the cards matching opts to path as YAML.
func (s *Store) ExportYAML(ctx context.Context, path string, opts QueryOptions) error {
	opts.MaxResults = exportLimit
	cards, err := s.Retrieve(ctx, opts)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	if cards == nil {
		cards = []types.Card{}
	}

	data, err := yaml.Marshal(cards)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
