// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package renderer

import (
	"os"
	"path/filepath"
	"runtime"
)

// Location describes where the browser used for rasterizing is installed on a
// platform: a base directory read from EnvVar (DefaultBase when unset) joined
// with RelPath. Fallback is a bare executable name resolved through PATH when
// the joined path does not exist.
type Location struct {
	EnvVar      string
	DefaultBase string
	RelPath     string
	Fallback    string
}

// PlatformLocation returns the Location for the running operating system.
func PlatformLocation() Location {
	return locationFor(runtime.GOOS)
}

func locationFor(goos string) Location {
	switch goos {
	case "windows":
		return Location{
			EnvVar:      "ProgramFiles(x86)",
			DefaultBase: `C:\Program Files (x86)`,
			RelPath:     filepath.Join("Microsoft", "Edge", "Application", "msedge.exe"),
			Fallback:    "msedge",
		}
	case "darwin":
		return Location{
			EnvVar:      "ICONRASTER_APPLICATIONS",
			DefaultBase: "/Applications",
			RelPath:     filepath.Join("Microsoft Edge.app", "Contents", "MacOS", "Microsoft Edge"),
			Fallback:    "microsoft-edge",
		}
	default: // Linux, BSD, etc.
		return Location{
			EnvVar:      "ICONRASTER_OPT",
			DefaultBase: "/opt",
			RelPath:     filepath.Join("microsoft", "msedge", "msedge"),
			Fallback:    "microsoft-edge",
		}
	}
}

// Candidate returns the full installation path derived from the environment,
// without checking that it exists.
func (l Location) Candidate() string {
	return l.candidate(os.Getenv)
}

// Resolve returns the installed executable path when it exists on disk, and
// the bare Fallback name otherwise. A bare name is looked up in PATH only when
// the process is spawned, so a missing browser surfaces as a per-file failure.
func (l Location) Resolve() string {
	return l.resolve(os.Getenv)
}

func (l Location) candidate(getenv func(string) string) string {
	base := getenv(l.EnvVar)
	if base == "" {
		base = l.DefaultBase
	}
	return filepath.Join(base, l.RelPath)
}

func (l Location) resolve(getenv func(string) string) string {
	p := l.candidate(getenv)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return l.Fallback
}
