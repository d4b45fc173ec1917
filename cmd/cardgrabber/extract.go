// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cardgrabber/internal/cardset"
	"github.com/pdiddy/cardgrabber/internal/normalize"
)

const extractUsage = "Usage: cardgrabber extract <vault_path> <output_json>"

var extractCmd = &cobra.Command{
	Use:   "extract <vault_path> <output_json>",
	Short: "Extract card notes into a JSON card database",
	Long: `Extract reads every Markdown note under <vault_path>/Cards, normalizes
its frontmatter into a card record, and writes the records as an indented
JSON array to <output_json>.

Unreadable notes are skipped with a warning unless --strict is set.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) != 2 {
		fmt.Fprintln(out, extractUsage)
		return nil
	}

	cfg := pipelineConfig().Extract
	cfg.VaultPath = args[0]
	outPath := args[1]

	progress := io.Discard
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		progress = out
	}

	cards, result, err := cardset.Build(cmd.Context(), cfg, normalize.FromConfig(cfg), progress)
	if err != nil {
		return err
	}

	if err := cardset.WriteJSON(outPath, cards); err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(out, "Extracted %d cards into %s\n", len(cards), outPath)
	if result.HasSkips() {
		color.New(color.FgYellow).Fprintf(out, "Skipped %d unreadable notes (run with --verbose for details)\n", result.Skipped)
	}
	return nil
}

func init() {
	extractCmd.Flags().String("cards-dir", "Cards", "vault subfolder that holds card notes")
	extractCmd.Flags().String("image", "", "default image path for every card")
	extractCmd.Flags().Bool("strict", false, "abort on the first unreadable note instead of skipping it")
	extractCmd.Flags().BoolP("verbose", "v", false, "print a status line per note")

	_ = viper.BindPFlag("extract.cards_dir", extractCmd.Flags().Lookup("cards-dir"))
	_ = viper.BindPFlag("extract.default_image", extractCmd.Flags().Lookup("image"))
	_ = viper.BindPFlag("extract.strict", extractCmd.Flags().Lookup("strict"))

	rootCmd.AddCommand(extractCmd)
}
