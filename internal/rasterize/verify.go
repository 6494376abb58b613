// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rasterize

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
)

// ErrVerifyFailed marks a renderer run that exited cleanly but did not leave
// a PNG of the requested size behind.
var ErrVerifyFailed = errors.New("output verification failed")

// verifyPNG checks that path holds a PNG exactly size pixels on each edge.
func verifyPNG(path string, size int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerifyFailed, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("%w: decoding %s: %w", ErrVerifyFailed, path, err)
	}
	if format != "png" {
		return fmt.Errorf("%w: %s is %s, not png", ErrVerifyFailed, path, format)
	}
	if cfg.Width != size || cfg.Height != size {
		return fmt.Errorf("%w: %s is %dx%d, want %dx%d",
			ErrVerifyFailed, path, cfg.Width, cfg.Height, size, size)
	}
	return nil
}
