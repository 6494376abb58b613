// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rasterize converts the SVG icons in a directory into fixed-size
// PNGs by screenshotting each one in a headless browser.
//
// Icons are processed strictly one after another. Every icon produces exactly
// one status line on the output writer; a failed icon never stops the batch.
package rasterize

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/pdiddy/iconraster/internal/renderer"
	"github.com/pdiddy/iconraster/pkg/types"
)

// Screenshotter runs the browser once with a prepared command line.
// *renderer.Renderer is the production implementation.
type Screenshotter interface {
	Screenshot(ctx context.Context, args []string) error
}

// Recorder receives every conversion result, e.g. a history ledger.
// Recording errors are logged and never change the outcome of an icon.
type Recorder interface {
	Record(ctx context.Context, r types.ConversionResult) error
}

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Converted int
	Failed    int
	Results   []types.ConversionResult
}

// Total returns the number of icons processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any icon failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Converter rasterizes icons through a Screenshotter at one fixed size.
type Converter struct {
	shot     Screenshotter
	size     int
	verify   bool
	recorder Recorder
	w        io.Writer
	abs      func(string) (string, error)
}

// Option configures a Converter.
type Option func(*Converter)

// WithVerify enables the post-condition check on every PNG.
func WithVerify(v bool) Option {
	return func(c *Converter) { c.verify = v }
}

// WithRecorder sends every result to rec as well as the status writer.
func WithRecorder(rec Recorder) Option {
	return func(c *Converter) { c.recorder = rec }
}

// New returns a Converter that renders every icon at size x size pixels and
// writes one status line per icon to w. A non-positive size falls back to
// types.DefaultSize.
func New(shot Screenshotter, size int, w io.Writer, opts ...Option) *Converter {
	if size <= 0 {
		size = types.DefaultSize
	}
	c := &Converter{
		shot: shot,
		size: size,
		w:    w,
		abs:  filepath.Abs,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Size returns the edge length used for every icon.
func (c *Converter) Size() int { return c.size }

// Run discovers the icons in dir and converts them in order. A directory that
// cannot be scanned is logged and treated as empty.
func (c *Converter) Run(ctx context.Context, dir string) BatchResult {
	icons, err := Discover(dir)
	if err != nil {
		slog.Warn("icon discovery failed", "dir", dir, "error", err)
		return BatchResult{}
	}
	if len(icons) == 0 {
		slog.Info("no icons found", "dir", dir, "pattern", svgPattern)
		return BatchResult{}
	}
	return c.ConvertBatch(ctx, icons)
}

// ConvertBatch converts each icon in turn and returns a summary.
func (c *Converter) ConvertBatch(ctx context.Context, icons []types.Icon) BatchResult {
	var result BatchResult
	for _, icon := range icons {
		r := c.ConvertIcon(ctx, icon)
		if r.Succeeded() {
			result.Converted++
		} else {
			result.Failed++
		}
		result.Results = append(result.Results, r)
	}
	slog.Info("batch complete",
		"converted", result.Converted,
		"failed", result.Failed,
		"total", result.Total(),
		"size", c.size,
	)
	return result
}

// ConvertIcon renders one icon and prints its status line. Every failure
// (path resolution, spawn, exit status, verification) is folded into a
// failed result.
func (c *Converter) ConvertIcon(ctx context.Context, icon types.Icon) types.ConversionResult {
	start := time.Now()
	err := c.render(ctx, icon)

	r := types.ConversionResult{
		Icon:     icon,
		Status:   types.ConversionDone,
		Size:     c.size,
		Duration: time.Since(start),
	}
	if err != nil {
		r.Status = types.ConversionFailed
		r.Error = err.Error()
		slog.Debug("icon failed", "icon", icon.SVGPath, "error", err)
		fmt.Fprintf(c.w, "✗ Failed %s\n", icon.SVGPath)
	} else {
		slog.Debug("icon converted", "icon", icon.SVGPath, "png", icon.PNGPath, "duration", r.Duration)
		fmt.Fprintf(c.w, "✓ Resized to %dx%d: %s\n", c.size, c.size, icon.SVGPath)
	}

	if c.recorder != nil {
		if recErr := c.recorder.Record(ctx, r); recErr != nil {
			slog.Warn("recording result failed", "icon", icon.SVGPath, "error", recErr)
		}
	}
	return r
}

func (c *Converter) render(ctx context.Context, icon types.Icon) error {
	in, err := c.abs(icon.SVGPath)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", icon.SVGPath, err)
	}
	out, err := c.abs(icon.PNGPath)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", icon.PNGPath, err)
	}

	args := renderer.ScreenshotArgs(out, FileURI(in), c.size)
	if err := c.shot.Screenshot(ctx, args); err != nil {
		return fmt.Errorf("rendering %s: %w", icon.SVGPath, err)
	}

	if c.verify {
		return verifyPNG(out, c.size)
	}
	return nil
}
