// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cardgrabber/internal/container"
	"github.com/pdiddy/cardgrabber/internal/sheet"
	"github.com/pdiddy/cardgrabber/pkg/types"
)

// fakeRuntime implements container.Runtime, echoing a canned document.
type fakeRuntime struct {
	hasImage bool
	output   string
	err      error
	jobs     []container.Job
	requests []Request
}

func (f *fakeRuntime) Name() string                   { return "fake" }
func (f *fakeRuntime) Available(context.Context) bool { return true }

func (f *fakeRuntime) ImageExists(_ context.Context, image string) error {
	if !f.hasImage {
		return errors.New("no such image " + image)
	}
	return nil
}

func (f *fakeRuntime) Run(_ context.Context, job container.Job) error {
	f.jobs = append(f.jobs, job)
	if f.err != nil {
		return f.err
	}
	var req Request
	data, _ := io.ReadAll(job.Stdin)
	if err := json.Unmarshal(data, &req); err != nil {
		return err
	}
	f.requests = append(f.requests, req)
	_, err := io.WriteString(job.Stdout, f.output)
	return err
}

func sampleLayout(t *testing.T, backs bool) sheet.Layout {
	t.Helper()
	cards := []types.Card{
		{Name: "a", Type: []string{"Unit"}},
		{Name: "b", Type: []string{"Leader"}, HasBack: backs},
		{Name: "c", Type: []string{"Citadel"}},
	}
	layout, err := sheet.NewLayout(cards, 2)
	require.NoError(t, err)
	return layout
}

func TestNewContainerRendererMissingImage(t *testing.T) {
	_, err := NewContainerRenderer(context.Background(), &fakeRuntime{}, types.DefaultRendererImage, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "renderer image not available")
}

func TestContainerRender(t *testing.T) {
	rt := &fakeRuntime{hasImage: true, output: "%PDF-1.7"}
	r, err := NewContainerRenderer(context.Background(), rt, "img:1", io.Discard)
	require.NoError(t, err)

	layout := sampleLayout(t, true)
	var out bytes.Buffer
	require.NoError(t, r.Render(context.Background(), Fronts, layout.PageSize, layout.Fronts, &out))

	assert.Equal(t, "%PDF-1.7", out.String())
	require.Len(t, rt.jobs, 1)
	assert.Equal(t, "img:1", rt.jobs[0].Image)
	assert.Equal(t, "fronts", rt.jobs[0].Env["CARD_SIDE"])
	assert.Equal(t, "2", rt.jobs[0].Env["CARD_PAGE_SIZE"])

	require.Len(t, rt.requests, 1)
	assert.Equal(t, Fronts, rt.requests[0].Side)
	assert.Len(t, rt.requests[0].Pages, 2)
}

func TestContainerRenderEmptyOutput(t *testing.T) {
	rt := &fakeRuntime{hasImage: true}
	r, err := NewContainerRenderer(context.Background(), rt, "img:1", io.Discard)
	require.NoError(t, err)

	err = r.Render(context.Background(), Backs, 2, []sheet.Page{{Number: 1}}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "empty output")
}

func TestRenderLayout(t *testing.T) {
	rt := &fakeRuntime{hasImage: true, output: "%PDF"}
	r, err := NewContainerRenderer(context.Background(), rt, "img:1", io.Discard)
	require.NoError(t, err)

	outDir := filepath.Join(t.TempDir(), "print")
	var log bytes.Buffer
	result, err := RenderLayout(context.Background(), r, sampleLayout(t, true), outDir, &log)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(outDir, "cards_fronts.pdf"),
		filepath.Join(outDir, "cards_backs.pdf"),
	}, result.Written)
	assert.Empty(t, result.Skipped)

	data, err := os.ReadFile(filepath.Join(outDir, "cards_backs.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))
	assert.Contains(t, log.String(), "rendered: fronts (2 pages)")
}

func TestRenderLayoutSkipsEmptyBacks(t *testing.T) {
	rt := &fakeRuntime{hasImage: true, output: "%PDF"}
	r, err := NewContainerRenderer(context.Background(), rt, "img:1", io.Discard)
	require.NoError(t, err)

	var log bytes.Buffer
	result, err := RenderLayout(context.Background(), r, sampleLayout(t, false), t.TempDir(), &log)
	require.NoError(t, err)

	assert.Len(t, result.Written, 1)
	assert.Equal(t, []Side{Backs}, result.Skipped)
	assert.Contains(t, log.String(), "skipped:  backs")
}

func TestRenderLayoutFailure(t *testing.T) {
	rt := &fakeRuntime{hasImage: true, err: errors.New("chromium crashed")}
	r, err := NewContainerRenderer(context.Background(), rt, "img:1", io.Discard)
	require.NoError(t, err)

	var log bytes.Buffer
	_, err = RenderLayout(context.Background(), r, sampleLayout(t, true), t.TempDir(), &log)
	require.Error(t, err)
	assert.Contains(t, log.String(), "failed:")
}
