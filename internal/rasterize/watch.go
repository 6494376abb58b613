// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rasterize

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch re-renders every *.svg in dir that is created or written, until ctx
// is cancelled. Events are handled one at a time on the calling goroutine.
// It does not convert icons that already exist; call Run first for that.
func (c *Converter) Watch(ctx context.Context, dir string) error {
	w, err := newDirWatcher(dir)
	if err != nil {
		return err
	}
	return c.watchLoop(ctx, w)
}

func newDirWatcher(dir string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	slog.Info("watching for icon changes", "dir", dir, "pattern", svgPattern)
	return w, nil
}

// watchLoop owns w and closes it on return.
func (c *Converter) watchLoop(ctx context.Context, w *fsnotify.Watcher) error {
	defer w.Close()

	// modTime of each icon when it was last rendered; editors often emit
	// several write events for one save.
	rendered := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if match, _ := filepath.Match(svgPattern, filepath.Base(ev.Name)); !match {
				continue
			}
			info, err := os.Stat(ev.Name)
			if err != nil || info.IsDir() {
				continue
			}
			if last, seen := rendered[ev.Name]; seen && last.Equal(info.ModTime()) {
				continue
			}
			rendered[ev.Name] = info.ModTime()
			c.ConvertIcon(ctx, NewIcon(ev.Name))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)
		}
	}
}
