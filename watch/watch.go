// Package watch reruns a function whenever source files below a directory
// change.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the tree must be quiet before fn runs.
const DefaultDebounce = 300 * time.Millisecond

// Watcher calls Fn after changes to files ending in Ext below Dir.
type Watcher struct {
	Dir      string
	Ext      string
	Debounce time.Duration
	Fn       func(context.Context) error
	Logger   *zap.Logger
}

// Run watches dir recursively until ctx is done. Events on files ending in
// ext are collected until nothing has changed for debounce, then fn runs
// once. Errors from fn are logged and watching continues.
func Run(ctx context.Context, dir, ext string, debounce time.Duration, fn func(context.Context) error) error {
	w := &Watcher{Dir: dir, Ext: ext, Debounce: debounce, Fn: fn}
	return w.Run(ctx)
}

func (w *Watcher) logger() *zap.Logger {
	if w.Logger == nil {
		return zap.NewNop()
	}
	return w.Logger
}

func (w *Watcher) Run(ctx context.Context) error {
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "could not create watcher")
	}
	defer watcher.Close()
	if err := w.addTree(watcher, w.Dir); err != nil {
		return err
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(watcher, event.Name); err != nil {
						w.logger().Warn("could not watch new directory",
							zap.String("dir", event.Name), zap.Error(err))
					}
					continue
				}
			}
			if !w.relevant(event) {
				continue
			}
			w.logger().Debug("source changed",
				zap.String("file", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger().Error("watch error", zap.Error(err))

		case <-timer.C:
			if err := w.Fn(ctx); err != nil {
				w.logger().Error("regeneration failed", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(event.Name), w.Ext) {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

// addTree watches root and every directory below it.
func (w *Watcher) addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "could not walk %s", path)
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return errors.Wrapf(err, "could not watch %s", path)
		}
		w.logger().Debug("watching", zap.String("dir", path))
		return nil
	})
}
