// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rasterize

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/pdiddy/iconraster/pkg/types"
)

const (
	// svgPattern selects the vector inputs in the scanned directory.
	svgPattern = "*.svg"
	// pngExt replaces the input extension on the derived output.
	pngExt = ".png"
)

// Discover returns the icons in dir whose names match *.svg. The scan is not
// recursive and keeps the order filepath.Glob returns.
func Discover(dir string) ([]types.Icon, error) {
	matches, err := filepath.Glob(filepath.Join(dir, svgPattern))
	if err != nil {
		return nil, fmt.Errorf("scanning %s for %s: %w", dir, svgPattern, err)
	}
	icons := make([]types.Icon, len(matches))
	for i, m := range matches {
		icons[i] = NewIcon(m)
	}
	return icons, nil
}

// NewIcon builds the Icon for an input path, deriving its output path.
func NewIcon(svgPath string) types.Icon {
	return types.Icon{
		Name:    filepath.Base(svgPath),
		SVGPath: svgPath,
		PNGPath: OutputPath(svgPath),
	}
}

// OutputPath swaps the extension of path for .png, keeping the directory.
// Only the final extension is replaced, so "a.b.svg" becomes "a.b.png".
func OutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + pngExt
}

// FileURI converts an absolute filesystem path to a file:// URI. Windows
// drive paths gain the leading slash the scheme requires.
func FileURI(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}
