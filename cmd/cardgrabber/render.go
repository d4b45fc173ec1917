// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cardgrabber/internal/container"
	"github.com/pdiddy/cardgrabber/internal/logger"
	"github.com/pdiddy/cardgrabber/internal/render"
	"github.com/pdiddy/cardgrabber/internal/sheet"
)

var renderCmd = &cobra.Command{
	Use:   "render <layout_json> <out_dir>",
	Short: "Render a sheet layout into printable documents",
	Long: `Render hands each side of a layout written by sheets to the renderer
image (docker, falling back to podman) and writes cards_fronts.pdf and,
when any card has a back face, cards_backs.pdf into <out_dir>.`,
	Args: cobra.ExactArgs(2),
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger("render")
	ctx := cmd.Context()

	layout, err := sheet.ReadLayout(args[0])
	if err != nil {
		return err
	}

	rt, err := container.DetectRuntime(ctx)
	if err != nil {
		return err
	}
	image := pipelineConfig().Render.Image
	log.Debugw("using container runtime", "runtime", rt.Name(), "image", image)

	r, err := render.NewContainerRenderer(ctx, rt, image, os.Stderr)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	result, err := render.RenderLayout(ctx, r, layout, args[1], out)
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(out, "Rendered %d documents into %s\n", len(result.Written), args[1])
	if len(result.Skipped) > 0 {
		fmt.Fprintf(out, "Skipped sides: %v\n", result.Skipped)
	}
	return nil
}

func init() {
	renderCmd.Flags().String("image", "card-renderer:latest", "renderer container image")
	_ = viper.BindPFlag("render.image", renderCmd.Flags().Lookup("image"))

	rootCmd.AddCommand(renderCmd)
}
