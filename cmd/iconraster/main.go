// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the iconraster CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/iconraster/internal/config"
	"github.com/pdiddy/iconraster/internal/logging"
	"github.com/pdiddy/iconraster/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logCloser flushes the rotated log file, if one was opened.
var logCloser io.Closer

// rootCmd is the base command for the iconraster CLI. Run without a
// subcommand it converts the icons in the current directory.
var rootCmd = &cobra.Command{
	Use:   "iconraster [dir]",
	Short: "Rasterize SVG icons into fixed-size PNGs with a headless browser",
	Long: `iconraster converts every *.svg file in a directory (the current one by
default) into a square, transparent PNG next to it by screenshotting the icon
in a headless Microsoft Edge.

Each icon prints one status line. A failed icon never stops the batch and does
not change the exit status.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
	RunE: runConvert,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./iconraster.yaml or <user config dir>/iconraster/config.yaml)")
	pf.String("dir", ".", "directory scanned for *.svg icons")
	pf.Int("size", types.DefaultSize, "square output size in pixels")
	pf.String("renderer", "", "browser executable (default: platform Edge install, then msedge/microsoft-edge on PATH)")
	pf.Duration("timeout", 0, "per-icon renderer timeout (0 waits indefinitely)")
	pf.Bool("verify", false, "fail icons whose PNG is missing or not size x size")
	pf.String("history", "", "SQLite file recording every conversion (empty disables)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-file", "", "also write JSON logs to this file, rotated by size")

	bindFlags()
}

// bindFlags maps persistent flags onto viper keys.
func bindFlags() {
	pf := rootCmd.PersistentFlags()
	for key, flag := range map[string]string{
		"dir":       "dir",
		"size":      "size",
		"renderer":  "renderer",
		"timeout":   "timeout",
		"verify":    "verify",
		"history":   "history",
		"log.level": "log-level",
		"log.file":  "log-file",
	} {
		if err := viper.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", flag, err))
		}
	}
}

// setup loads configuration and installs the default logger.
func setup(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	logger, closer, err := logging.New(logging.Options{
		Level: viper.GetString("log.level"),
		File:  viper.GetString("log.file"),
	})
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	logCloser = closer

	if used := viper.ConfigFileUsed(); used != "" {
		slog.Debug("using config file", "path", used)
	}
	return nil
}

func loadConfig(cmd *cobra.Command) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("iconraster")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath(config.DefaultDir())
	}

	viper.SetEnvPrefix("ICONRASTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return config.Validate(viper.ConfigFileUsed())
}

// rasterConfig collects the run settings from flags, environment and config.
// A positional directory argument overrides --dir.
func rasterConfig(args []string) types.RasterConfig {
	cfg := types.RasterConfig{
		Dir:      viper.GetString("dir"),
		Size:     viper.GetInt("size"),
		Renderer: viper.GetString("renderer"),
		Timeout:  viper.GetDuration("timeout"),
		Verify:   viper.GetBool("verify"),
		History:  viper.GetString("history"),
	}
	if len(args) > 0 {
		cfg.Dir = args[0]
	}
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	cfg.Dir = filepath.Clean(cfg.Dir)
	return cfg
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
