// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the iconraster pipeline:
// the icon being converted, the per-file conversion outcome, and the
// configuration handed to each stage.
package types

import "time"

// ConversionStatus indicates the outcome of rasterizing one icon.
type ConversionStatus string

const (
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// Icon pairs a discovered vector file with the raster file derived from it.
type Icon struct {
	// Name is the file name as discovered (no directory component).
	Name string `json:"name" yaml:"name"`

	// SVGPath is the path of the vector input, relative to the scanned directory
	// or absolute, exactly as the glob returned it.
	SVGPath string `json:"svg_path" yaml:"svg_path"`

	// PNGPath is the raster output path: SVGPath with its extension swapped.
	PNGPath string `json:"png_path" yaml:"png_path"`
}

// ConversionResult records what happened to a single icon.
type ConversionResult struct {
	Icon     Icon             `json:"icon" yaml:"icon"`
	Status   ConversionStatus `json:"status" yaml:"status"`
	Size     int              `json:"size" yaml:"size"`
	Error    string           `json:"error,omitempty" yaml:"error,omitempty"`
	Duration time.Duration    `json:"duration" yaml:"duration"`
}

// Succeeded reports whether the icon was rasterized.
func (r ConversionResult) Succeeded() bool {
	return r.Status == ConversionDone
}
