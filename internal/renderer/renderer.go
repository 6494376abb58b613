// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package renderer locates the headless browser used to rasterize icons and
// runs it as a child process.
//
// The browser is driven purely through its command line: it loads a file://
// URI in headless mode and writes a screenshot of the window to a PNG. The
// exit status is the only success signal.
package renderer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// ErrRendererFailed wraps every failed invocation: spawn errors, a missing
// executable, non-zero exit, and timeouts alike.
var ErrRendererFailed = errors.New("renderer failed")

// executor abstracts command execution for testing.
type executor interface {
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// Renderer runs one browser binary. It is not safe for concurrent use; the
// converter drives it strictly one file at a time.
type Renderer struct {
	bin     string
	timeout time.Duration
	exec    executor
}

// New returns a Renderer for the executable at bin. A bare name is resolved
// through PATH when each process starts. A zero timeout waits indefinitely.
func New(bin string, timeout time.Duration) *Renderer {
	return newRenderer(bin, timeout, osExecutor{})
}

func newRenderer(bin string, timeout time.Duration, exec executor) *Renderer {
	return &Renderer{bin: bin, timeout: timeout, exec: exec}
}

// Path returns the executable the renderer spawns.
func (r *Renderer) Path() string { return r.bin }

// Screenshot runs the browser with args and waits for it to exit. Output
// streams are captured and only surface in debug logs.
func (r *Renderer) Screenshot(ctx context.Context, args []string) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	err := r.exec.Run(ctx, r.bin, args, &stdout, &stderr)
	if err != nil {
		slog.Debug("renderer exited with error",
			"bin", r.bin,
			"error", err,
			"stderr", strings.TrimSpace(stderr.String()),
		)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %s: %w", ErrRendererFailed, r.bin, ctxErr)
		}
		return fmt.Errorf("%w: %s: %w", ErrRendererFailed, r.bin, err)
	}
	if stdout.Len() > 0 || stderr.Len() > 0 {
		slog.Debug("renderer output",
			"bin", r.bin,
			"stdout", strings.TrimSpace(stdout.String()),
			"stderr", strings.TrimSpace(stderr.String()),
		)
	}
	return nil
}
