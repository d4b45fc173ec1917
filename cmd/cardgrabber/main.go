// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cardgrabber CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cardgrabber/internal/logger"
	"github.com/pdiddy/cardgrabber/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the cardgrabber CLI.
var rootCmd = &cobra.Command{
	Use:   "cardgrabber",
	Short: "Extract card notes into a printable card database",
	Long: `cardgrabber reads a vault of Markdown card notes, normalizes their
frontmatter into a canonical card database, and prepares fixed-size sheets
for an external renderer.

Stages are subcommands: extract, sheets, render, index, and query.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.InitLogger()
		debug, _ := cmd.Flags().GetBool("debug")
		logger.SetDebug(debug)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cardgrabber.yaml or ~/.config/cardgrabber/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
}

func initConfig() {
	setDefaults()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cardgrabber")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cardgrabber"))
		}
	}

	viper.SetEnvPrefix("CARDGRABBER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setDefaults() {
	viper.SetDefault("extract.cards_dir", types.DefaultCardsDir)
	viper.SetDefault("extract.default_image", types.DefaultImage)
	viper.SetDefault("extract.strict", false)
	viper.SetDefault("sheets.page_size", types.DefaultPageSize)
	viper.SetDefault("index.index_dir", "index")
	viper.SetDefault("index.max_results", 50)
	viper.SetDefault("render.image", types.DefaultRendererImage)
}

// pipelineConfig reads the merged configuration (defaults, config file,
// environment, bound flags).
func pipelineConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Extract: types.ExtractConfig{
			CardsDir:     viper.GetString("extract.cards_dir"),
			DefaultImage: viper.GetString("extract.default_image"),
			Strict:       viper.GetBool("extract.strict"),
			Resources:    viper.GetStringMapString("extract.resources"),
		},
		Sheets: types.SheetConfig{
			PageSize: viper.GetInt("sheets.page_size"),
		},
		Index: types.IndexConfig{
			IndexDir:   viper.GetString("index.index_dir"),
			MaxResults: viper.GetInt("index.max_results"),
		},
		Render: types.RenderConfig{
			Image: viper.GetString("render.image"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
