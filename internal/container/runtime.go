// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container runs the external sheet renderer image under docker or
// podman. The renderer reads a layout document on stdin and writes the
// printable document to stdout.
package container

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sort"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Job describes one renderer invocation.
type Job struct {
	// Image is the renderer image reference.
	Image string

	// Env is passed to the container as -e KEY=VALUE pairs.
	Env map[string]string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Runtime provides the container operations the render stage needs.
type Runtime interface {
	// Name returns the runtime name ("docker" or "podman").
	Name() string

	// Available reports whether the runtime binary is on PATH and its
	// daemon or service answers an info command.
	Available(ctx context.Context) bool

	// ImageExists returns nil when image is present locally.
	ImageExists(ctx context.Context, image string) error

	// Run executes job in a throwaway container.
	Run(ctx context.Context, job Job) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(ctx context.Context, name string, args ...string) error
	RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func (o *osExecutor) RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// runtime implements Runtime for docker or podman; they differ only in the
// binary and the image check subcommand.
type runtime struct {
	bin           string
	imageCheckCmd []string
	exec          executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available(ctx context.Context) bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(ctx, r.bin, "info") == nil
}

func (r *runtime) ImageExists(ctx context.Context, image string) error {
	args := append(append([]string{}, r.imageCheckCmd...), image)
	if err := r.exec.RunSilent(ctx, r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) Run(ctx context.Context, job Job) error {
	if err := r.exec.RunPiped(ctx, r.bin, runArgs(job), job.Stdin, job.Stdout, job.Stderr); err != nil {
		return fmt.Errorf("running %s container %s: %w", r.bin, job.Image, err)
	}
	return nil
}

// runArgs builds "run --rm -i [-e K=V...] image" with env keys sorted.
func runArgs(job Job) []string {
	keys := make([]string, 0, len(job.Env))
	for k := range job.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := []string{"run", "--rm", "-i"}
	for _, k := range keys {
		args = append(args, "-e", k+"="+job.Env[k])
	}
	return append(args, job.Image)
}

func newDockerRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binDocker,
		imageCheckCmd: []string{"image", "inspect"},
		exec:          exec,
	}
}

func newPodmanRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binPodman,
		imageCheckCmd: []string{"image", "exists"},
		exec:          exec,
	}
}

var defaultExec = &osExecutor{}

// DetectRuntime tries docker first and falls back to podman.
func DetectRuntime(ctx context.Context) (Runtime, error) {
	return detectRuntime(ctx, defaultExec)
}

func detectRuntime(ctx context.Context, exec executor) (Runtime, error) {
	for _, rt := range []*runtime{newDockerRuntime(exec), newPodmanRuntime(exec)} {
		if rt.Available(ctx) {
			return rt, nil
		}
	}
	return nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}
