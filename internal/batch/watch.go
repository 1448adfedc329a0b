package batch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const (
	// DefaultDebounce is the quiet window after the last change before
	// a re-run fires.
	DefaultDebounce = 500 * time.Millisecond

	// maxPending flushes early when this many documents change inside
	// one window.
	maxPending = 64
)

// Watch runs the batch once, then watches the pattern directories and
// re-runs the pipeline for changed documents after a debounce window.
// It returns when the context is cancelled or the watcher dies. Design
// failures are logged and watching continues.
func (r *Runner) Watch(ctx context.Context, patterns []string, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	paths, err := Expand(patterns)
	if err != nil {
		return err
	}
	if err := r.Run(ctx, paths); err != nil && ctx.Err() != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	for _, dir := range watchDirs(patterns, paths) {
		if err := w.Add(dir); err != nil {
			r.log.Warn("cannot watch directory", zap.String("dir", dir), zap.Error(err))
		}
	}
	r.log.Info("watching for changes", zap.Strings("patterns", patterns))

	pending := make(map[string]struct{})
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	flush := func() {
		if len(pending) == 0 {
			return
		}
		changed := make([]string, 0, len(pending))
		for p := range pending {
			changed = append(changed, p)
		}
		pending = make(map[string]struct{})
		r.log.Info("documents changed", zap.Strings("paths", changed))
		if err := r.Run(ctx, changed); err != nil && ctx.Err() == nil {
			r.log.Error("batch re-run failed", zap.Error(err))
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !matchesAny(patterns, ev.Name) {
				continue
			}
			pending[ev.Name] = struct{}{}
			if len(pending) >= maxPending {
				timer.Stop()
				flush()
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.log.Warn("watch error", zap.Error(err))
		case <-timer.C:
			flush()
		}
	}
}

// watchDirs collects the directories to watch: the static base of each
// pattern plus the directories of the current matches.
func watchDirs(patterns, matches []string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(dir string) {
		if dir == "" {
			dir = "."
		}
		if _, ok := seen[dir]; ok {
			return
		}
		seen[dir] = struct{}{}
		out = append(out, dir)
	}
	for _, p := range patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(p))
		add(filepath.FromSlash(base))
	}
	for _, m := range matches {
		add(filepath.Dir(m))
	}
	return out
}

// matchesAny reports whether the changed path matches one of the glob
// patterns, by full path or by base name for bare-name patterns.
func matchesAny(patterns []string, name string) bool {
	slashed := filepath.ToSlash(name)
	for _, p := range patterns {
		if ok, err := doublestar.Match(filepath.ToSlash(p), slashed); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(filepath.ToSlash(p), filepath.ToSlash(filepath.Base(name))); err == nil && ok {
			return true
		}
	}
	return false
}
