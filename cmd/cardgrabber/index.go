// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cardgrabber/internal/cardset"
	"github.com/pdiddy/cardgrabber/internal/catalog"
	"github.com/pdiddy/cardgrabber/pkg/types"
)

// --- index subcommand ---

var indexCmd = &cobra.Command{
	Use:   "index <cards_json>",
	Short: "Load a card database into the local SQLite catalog",
	Long: `Index reads a card database written by extract and replaces the
contents of the SQLite catalog in --index-dir with it. Placeholder
records are not indexed.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	cards, err := cardset.ReadJSON(args[0])
	if err != nil {
		return err
	}

	store, err := catalog.NewStore(pipelineConfig().Index)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Ingest(cmd.Context(), cards, cmd.OutOrStdout())
	return err
}

// --- query subcommand ---

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Search the card catalog by text and filters",
	Long: `Query searches the catalog built by index. Free text matches the card
name, front text, and back text. Filters narrow by type tag, category,
aspect, or rarity. Results keep the extraction order.

Use --export to write the matching cards to a YAML file instead.`,
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide search text, --type, --category, --aspect, or --rarity")
	}

	store, err := catalog.NewStore(pipelineConfig().Index)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if exportPath, _ := cmd.Flags().GetString("export"); exportPath != "" {
		if err := store.ExportYAML(cmd.Context(), exportPath, opts); err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported to %s\n", exportPath)
		return nil
	}

	cards, err := store.Retrieve(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(out, cards, jsonOutput)
}

func formatQueryOutput(w io.Writer, cards []types.Card, jsonOutput bool) error {
	if jsonOutput {
		if cards == nil {
			cards = []types.Card{}
		}
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(cards)
	}

	if len(cards) == 0 {
		fmt.Fprintln(w, "No cards found.")
		return nil
	}

	header := color.New(color.Bold)
	header.Fprintf(w, "%-4s  %-30s  %-20s  %-10s  %s\n", "#", "Name", "Type", "Rarity", "Cost")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for i, c := range cards {
		fmt.Fprintf(w, "%-4d  %-30s  %-20s  %-10s  %s\n",
			i+1, truncate(c.Name, 30), truncate(strings.Join(c.Type, ", "), 20), truncate(c.Rarity, 10), c.Cost)
	}

	fmt.Fprintf(w, "\n%d cards\n", len(cards))
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- shared helpers ---

func queryOptsFromFlags(cmd *cobra.Command, args []string) catalog.QueryOptions {
	itemType, _ := cmd.Flags().GetString("type")
	category, _ := cmd.Flags().GetString("category")
	aspect, _ := cmd.Flags().GetString("aspect")
	rarity, _ := cmd.Flags().GetString("rarity")
	limit, _ := cmd.Flags().GetInt("limit")

	return catalog.QueryOptions{
		Text:       strings.TrimSpace(strings.Join(args, " ")),
		Type:       itemType,
		Category:   types.Category(strings.ToLower(category)),
		Aspect:     aspect,
		Rarity:     rarity,
		MaxResults: limit,
	}
}

func init() {
	// Shared by index and query.
	rootCmd.PersistentFlags().String("index-dir", "index", "directory holding the card catalog database")
	_ = viper.BindPFlag("index.index_dir", rootCmd.PersistentFlags().Lookup("index-dir"))

	queryCmd.Flags().String("type", "", "filter by type tag")
	queryCmd.Flags().String("category", "", "filter by category: leader, citadel, territory, production, unit, other")
	queryCmd.Flags().String("aspect", "", "filter by aspect")
	queryCmd.Flags().String("rarity", "", "filter by rarity")
	queryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	queryCmd.Flags().Bool("json", false, "output results as JSON")
	queryCmd.Flags().String("export", "", "write matching cards to this YAML file")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(queryCmd)
}
