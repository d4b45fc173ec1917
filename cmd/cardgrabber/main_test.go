// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cardgrabber/internal/sheet"
	"github.com/pdiddy/cardgrabber/pkg/types"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func writeVault(t *testing.T) string {
	t.Helper()
	vault := t.TempDir()
	notes := map[string]string{
		"Pikeman.md": "---\nCardName: Pikeman\nType: [Unit]\nProductionCost: 3 Food\nPower: 2\nToughness: 3\n---\n",
		"Queen.md":   "---\nCardName: Queen\nType: [Leader]\nBack-Side_Prod_Cost: (2) 3 Mana\nBack-Side_Name: Regent\n---\n",
	}
	for name, body := range notes {
		path := filepath.Join(vault, "Cards", name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return vault
}

func TestExtractMissingArgs(t *testing.T) {
	out := execute(t, "extract", "only-one")
	assert.Contains(t, out, extractUsage)
}

func TestPipeline(t *testing.T) {
	vault := writeVault(t)
	work := t.TempDir()
	cardsPath := filepath.Join(work, "cards.json")
	layoutPath := filepath.Join(work, "layout.json")

	out := execute(t, "extract", vault, cardsPath)
	assert.Contains(t, out, "Extracted 2 cards into "+cardsPath)

	data, err := os.ReadFile(cardsPath)
	require.NoError(t, err)
	var cards []types.Card
	require.NoError(t, json.Unmarshal(data, &cards))
	require.Len(t, cards, 2)
	assert.Equal(t, "Pikeman", cards[0].Name)
	assert.Equal(t, "FoFoFo", cards[0].Cost)
	assert.Equal(t, "(2)MaMaMa", cards[1].Cost)

	out = execute(t, "sheets", "--page-size", "4", cardsPath, layoutPath)
	assert.Contains(t, out, "1 front pages and 1 back pages")

	layout, err := sheet.ReadLayout(layoutPath)
	require.NoError(t, err)
	require.Len(t, layout.Fronts, 1)
	assert.Equal(t, 2, layout.Fronts[0].Padding())

	indexDir := filepath.Join(work, "index")
	out = execute(t, "--index-dir", indexDir, "index", cardsPath)
	assert.Contains(t, out, "indexed: 2 cards")

	out = execute(t, "--index-dir", indexDir, "query", "--category", "leader", "--json")
	var found []types.Card
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	require.Len(t, found, 1)
	assert.Equal(t, "Queen", found[0].Name)
}

func TestFormatQueryOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatQueryOutput(&buf, nil, false))
	assert.Equal(t, "No cards found.\n", buf.String())

	buf.Reset()
	require.NoError(t, formatQueryOutput(&buf, nil, true))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	cards := []types.Card{{Name: "Pikeman", Type: []string{"Unit"}, Rarity: "Common", Cost: "FoFoFo"}}
	require.NoError(t, formatQueryOutput(&buf, cards, false))
	assert.Contains(t, buf.String(), "Pikeman")
	assert.Contains(t, buf.String(), "1 cards")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
