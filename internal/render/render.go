// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render hands paginated sheets to an external renderer and writes
// the printable documents it returns. Templates, image compositing, and PDF
// encoding all live in the renderer.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdiddy/cardgrabber/internal/container"
	"github.com/pdiddy/cardgrabber/internal/sheet"
)

// Side selects which faces of the layout are rendered.
type Side string

const (
	Fronts Side = "fronts"
	Backs  Side = "backs"
)

// OutputName returns the document file name for a side.
func (s Side) OutputName() string {
	return "cards_" + string(s) + ".pdf"
}

// Renderer turns one side of a layout into a printable document.
type Renderer interface {
	Render(ctx context.Context, side Side, pageSize int, pages []sheet.Page, w io.Writer) error
}

// Request is the document piped to the renderer for one side.
type Request struct {
	Side     Side         `json:"side"`
	PageSize int          `json:"page_size"`
	Pages    []sheet.Page `json:"pages"`
}

// ContainerRenderer pipes requests through a renderer image run by a
// container runtime.
type ContainerRenderer struct {
	runtime container.Runtime
	image   string
	stderr  io.Writer
}

// NewContainerRenderer verifies that image exists in rt and returns a
// renderer using it. Renderer diagnostics are copied to stderr.
func NewContainerRenderer(ctx context.Context, rt container.Runtime, image string, stderr io.Writer) (*ContainerRenderer, error) {
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("renderer image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerRenderer{runtime: rt, image: image, stderr: stderr}, nil
}

// Render encodes the pages as a Request, runs the renderer, and copies its
// output to w.
func (c *ContainerRenderer) Render(ctx context.Context, side Side, pageSize int, pages []sheet.Page, w io.Writer) error {
	payload, err := json.Marshal(Request{Side: side, PageSize: pageSize, Pages: pages})
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", side, err)
	}

	var out bytes.Buffer
	err = c.runtime.Run(ctx, container.Job{
		Image: c.image,
		Env: map[string]string{
			"CARD_SIDE":      string(side),
			"CARD_PAGE_SIZE": strconv.Itoa(pageSize),
		},
		Stdin:  bytes.NewReader(payload),
		Stdout: &out,
		Stderr: c.stderr,
	})
	if err != nil {
		return fmt.Errorf("rendering %s: %w", side, err)
	}
	if out.Len() == 0 {
		return fmt.Errorf("renderer produced empty output for %s", side)
	}

	_, err = out.WriteTo(w)
	return err
}

// Result holds the documents written by RenderLayout.
type Result struct {
	Written []string
	Skipped []Side
}

// RenderLayout renders the fronts and, when present, the backs of layout
// into outDir, printing one status line per side to w.
func RenderLayout(ctx context.Context, r Renderer, layout sheet.Layout, outDir string, w io.Writer) (Result, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating output directory: %w", err)
	}

	var result Result
	sides := []struct {
		side  Side
		pages []sheet.Page
	}{
		{Fronts, layout.Fronts},
		{Backs, layout.Backs},
	}

	for _, s := range sides {
		if len(s.pages) == 0 {
			fmt.Fprintf(w, "skipped:  %s (no pages)\n", s.side)
			result.Skipped = append(result.Skipped, s.side)
			continue
		}

		path := filepath.Join(outDir, s.side.OutputName())
		var buf bytes.Buffer
		if err := r.Render(ctx, s.side, layout.PageSize, s.pages, &buf); err != nil {
			fmt.Fprintf(w, "failed:   %s (%v)\n", s.side, err)
			return result, err
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return result, fmt.Errorf("writing %s: %w", path, err)
		}

		fmt.Fprintf(w, "rendered: %s (%d pages) -> %s\n", s.side, len(s.pages), path)
		result.Written = append(result.Written, path)
	}

	return result, nil
}
