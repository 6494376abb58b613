package types

import "time"

// DefaultSize is the square pixel edge used for every output in a run.
const DefaultSize = 64

// RasterConfig holds settings for a conversion run.
type RasterConfig struct {
	// Dir is the directory scanned (non-recursively) for *.svg files.
	Dir string `json:"dir" yaml:"dir"`

	// Size is the square output edge in pixels (default 64). It is fixed for
	// the whole run.
	Size int `json:"size" yaml:"size"`

	// Renderer is an explicit path to the browser executable. When empty the
	// platform location is resolved with its environment-variable and
	// bare-name fallbacks.
	Renderer string `json:"renderer,omitempty" yaml:"renderer,omitempty"`

	// Timeout bounds a single renderer invocation. Zero means wait forever.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Verify enables the post-condition check: the PNG must exist and have
	// the requested dimensions for the file to count as converted.
	Verify bool `json:"verify" yaml:"verify"`

	// History is the path of the SQLite ledger. Empty disables it.
	History string `json:"history,omitempty" yaml:"history,omitempty"`
}

// LogConfig controls diagnostic logging on stderr and the optional log file.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level"`

	// File, when set, receives a copy of every log record, rotated by size.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}
