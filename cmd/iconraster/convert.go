package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pdiddy/iconraster/internal/history"
	"github.com/pdiddy/iconraster/internal/rasterize"
	"github.com/pdiddy/iconraster/internal/renderer"
	"github.com/pdiddy/iconraster/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [dir]",
	Short: "Convert every *.svg in a directory to a fixed-size PNG",
	Long: `Convert renders each *.svg in the directory (non-recursive) in a headless
browser window of --size x --size pixels with a transparent background, and
writes the screenshot next to the input with a .png extension.

One line is printed per icon: "✓ Resized to NxN: <file>" or "✗ Failed <file>".
Failures are reported and skipped; the exit status stays zero.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := rasterConfig(args)
	ctx := cmd.Context()

	conv, finish := newConverter(ctx, cfg, cmd.OutOrStdout())
	defer finish()

	conv.Run(ctx, cfg.Dir)
	return nil
}

// newConverter resolves the renderer and wires the optional history ledger.
// The returned func releases the ledger. A ledger that cannot be opened is
// logged and skipped so conversion still runs.
func newConverter(ctx context.Context, cfg types.RasterConfig, w io.Writer) (*rasterize.Converter, func()) {
	bin := resolveRenderer(cfg)
	opts := []rasterize.Option{rasterize.WithVerify(cfg.Verify)}
	finish := func() {}

	if cfg.History != "" {
		store, err := history.Open(cfg.History)
		if err != nil {
			slog.Warn("history disabled", "path", cfg.History, "error", err)
		} else {
			run, err := store.StartRun(ctx, cfg.Dir, bin, cfg.Size)
			if err != nil {
				slog.Warn("history disabled", "path", cfg.History, "error", err)
				store.Close()
			} else {
				slog.Debug("recording history", "path", cfg.History, "run", run.ID)
				opts = append(opts, rasterize.WithRecorder(run))
				finish = func() { store.Close() }
			}
		}
	}

	return rasterize.New(renderer.New(bin, cfg.Timeout), cfg.Size, w, opts...), finish
}

// resolveRenderer returns the explicit renderer when configured, otherwise
// the platform install path or its bare-name fallback.
func resolveRenderer(cfg types.RasterConfig) string {
	if cfg.Renderer != "" {
		slog.Debug("using configured renderer", "bin", cfg.Renderer)
		return cfg.Renderer
	}
	loc := renderer.PlatformLocation()
	bin := loc.Resolve()
	slog.Debug("renderer resolved", "candidate", loc.Candidate(), "bin", bin)
	return bin
}
