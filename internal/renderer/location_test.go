// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package renderer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	loc := Location{
		EnvVar:      "ICONRASTER_TEST_BASE",
		DefaultBase: "/nonexistent-default-base",
		RelPath:     filepath.Join("Microsoft", "Edge", "Application", "msedge.exe"),
		Fallback:    "msedge",
	}

	tests := []struct {
		name  string
		setup func(t *testing.T) map[string]string
		want  func(env map[string]string) string
	}{
		{
			name: "prefers environment path when it exists",
			setup: func(t *testing.T) map[string]string {
				base := t.TempDir()
				touch(t, filepath.Join(base, loc.RelPath))
				return map[string]string{loc.EnvVar: base}
			},
			want: func(env map[string]string) string {
				return filepath.Join(env[loc.EnvVar], loc.RelPath)
			},
		},
		{
			name: "falls back to bare name when environment path is missing",
			setup: func(t *testing.T) map[string]string {
				return map[string]string{loc.EnvVar: t.TempDir()}
			},
			want: func(map[string]string) string { return "msedge" },
		},
		{
			name: "falls back to bare name when variable unset and default missing",
			setup: func(t *testing.T) map[string]string {
				return map[string]string{}
			},
			want: func(map[string]string) string { return "msedge" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := tt.setup(t)
			got := loc.resolve(func(k string) string { return env[k] })
			assert.Equal(t, tt.want(env), got)
		})
	}
}

func TestResolveUsesDefaultBase(t *testing.T) {
	base := t.TempDir()
	loc := Location{
		EnvVar:      "ICONRASTER_TEST_BASE",
		DefaultBase: base,
		RelPath:     filepath.Join("microsoft", "msedge", "msedge"),
		Fallback:    "microsoft-edge",
	}
	touch(t, filepath.Join(base, loc.RelPath))

	got := loc.resolve(func(string) string { return "" })
	assert.Equal(t, filepath.Join(base, loc.RelPath), got)
}

func TestResolveReadsProcessEnvironment(t *testing.T) {
	base := t.TempDir()
	loc := Location{
		EnvVar:   "ICONRASTER_TEST_PROCESS_BASE",
		RelPath:  "msedge",
		Fallback: "msedge-fallback",
	}
	touch(t, filepath.Join(base, loc.RelPath))
	t.Setenv(loc.EnvVar, base)

	assert.Equal(t, filepath.Join(base, "msedge"), loc.Candidate())
	assert.Equal(t, filepath.Join(base, "msedge"), loc.Resolve())
}

func TestLocationFor(t *testing.T) {
	win := locationFor("windows")
	assert.Equal(t, "ProgramFiles(x86)", win.EnvVar)
	assert.Equal(t, `C:\Program Files (x86)`, win.DefaultBase)
	assert.Equal(t, "msedge", win.Fallback)
	assert.Equal(t, "msedge.exe", filepath.Base(win.RelPath))

	for _, goos := range []string{"darwin", "linux", "freebsd"} {
		loc := locationFor(goos)
		assert.NotEmpty(t, loc.EnvVar, goos)
		assert.NotEmpty(t, loc.DefaultBase, goos)
		assert.NotEmpty(t, loc.RelPath, goos)
		assert.Equal(t, "microsoft-edge", loc.Fallback, goos)
	}
}

func TestScreenshotArgs(t *testing.T) {
	args := ScreenshotArgs("/icons/home.png", "file:///icons/home.svg", 64)
	assert.Equal(t, []string{
		"--headless",
		"--screenshot=/icons/home.png",
		"--window-size=64,64",
		"--default-background-color=00000000",
		"--hide-scrollbars",
		"--force-device-scale-factor=1",
		"file:///icons/home.svg",
	}, args)

	args = ScreenshotArgs("/x.png", "file:///x.svg", 128)
	assert.Contains(t, args, "--window-size=128,128")
	assert.Equal(t, "file:///x.svg", args[len(args)-1])
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))
}
