// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cardgrabber/internal/cardset"
	"github.com/pdiddy/cardgrabber/internal/sheet"
)

var sheetsCmd = &cobra.Command{
	Use:   "sheets <cards_json> <layout_json>",
	Short: "Paginate a card database into fixed-size print sheets",
	Long: `Sheets reads a card database written by extract and splits it into
pages of --page-size cards. The last page is padded with placeholder cards.
Cards with a back face also get a separate back sheet list.`,
	Args: cobra.ExactArgs(2),
	RunE: runSheets,
}

func runSheets(cmd *cobra.Command, args []string) error {
	cards, err := cardset.ReadJSON(args[0])
	if err != nil {
		return err
	}

	layout, err := sheet.NewLayout(cards, pipelineConfig().Sheets.PageSize)
	if err != nil {
		return err
	}
	if err := sheet.WriteLayout(args[1], layout); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Laid out %d cards on %d front pages and %d back pages (%d per page) into %s\n",
		len(cards), len(layout.Fronts), len(layout.Backs), layout.PageSize, args[1])
	return nil
}

func init() {
	sheetsCmd.Flags().Int("page-size", 9, "cards per page")
	_ = viper.BindPFlag("sheets.page_size", sheetsCmd.Flags().Lookup("page-size"))

	rootCmd.AddCommand(sheetsCmd)
}
