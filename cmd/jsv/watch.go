package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"

	"github.com/gopatchy/jsv/internal/utils"
	"github.com/gopatchy/jsv/pkg/errors"
	"github.com/gopatchy/jsv/pkg/log"
)

var errWatchWrite = fmt.Errorf("--watch cannot be combined with --write (%w)", errors.ErrInvalidOption)

// watchedPaths lists every input file and directory of the invocation, cleaned and
// absolute. Stdin is never watched.
func watchedPaths(opts *options) []string {
	paths := []string{string(opts.Positional.SchemaPath)}

	for _, p := range opts.Schemas {
		paths = append(paths, string(p))
	}

	for _, p := range opts.SchemaDirs {
		paths = append(paths, string(p))
	}

	if opts.OptionsPath != nil {
		paths = append(paths, string(*opts.OptionsPath))
	}

	for _, p := range opts.Positional.DataPaths {
		paths = append(paths, string(p))
	}

	paths = lo.Reject(paths, func(p string, _ int) bool {
		return utils.IsStdin(p)
	})

	return lo.Uniq(lo.Map(paths, func(p string, _ int) string {
		abs, err := filepath.Abs(p)
		if err != nil {
			return filepath.Clean(p)
		}

		return abs
	}))
}

// watch calls run once, then again after every change to an input file,
// until ctx is done. Directories are watched rather than files so editors
// that replace files on save are still seen.
func watch(ctx context.Context, opts *options, run func() error) error {
	if opts.Write {
		return errWatchWrite
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	paths := watchedPaths(opts)
	tracked := map[string]bool{}
	trackedDirs := map[string]bool{}
	dirs := []string{}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err == nil && info.IsDir() {
			trackedDirs[p] = true
			dirs = append(dirs, p)

			continue
		}

		tracked[p] = true
		dirs = append(dirs, filepath.Dir(p))
	}

	dirs = lo.Uniq(dirs)

	for _, dir := range dirs {
		err = watcher.Add(dir)
		if err != nil {
			return fmt.Errorf("%s: %w", dir, err)
		}
	}

	report := func() {
		err := run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
		}
	}

	report()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			name := filepath.Clean(event.Name)

			// Extensionless names resolve to name.<ext>, so match on the stem too.
			if event.Op == fsnotify.Chmod || !(tracked[name] || tracked[strings.TrimSuffix(name, filepath.Ext(name))] || trackedDirs[filepath.Dir(name)]) {
				continue
			}

			log.Debugf("%s: %s", event.Name, event.Op)

			report()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.Warnf("watch: %s", err)
		}
	}
}
