// Package fsys locates schema and data documents on an fs.FS, accepting
// slash-rooted paths so callers can hand it os.DirFS("/") and absolute
// file names.
package fsys

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/gopatchy/jsv/internal/format"
	"github.com/gopatchy/jsv/internal/utils"
	"github.com/gopatchy/jsv/pkg/errors"
)

type FS struct {
	fsys fs.FS
}

func New(fsys fs.FS) *FS {
	return &FS{
		fsys: fsys,
	}
}

func (f *FS) Open(name string) (fs.File, error) {
	return f.fsys.Open(f.convertToFS(name))
}

func (f *FS) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(f.fsys, f.convertToFS(name))
}

func (f *FS) IsDir(name string) bool {
	info, err := f.stat(name)
	return err == nil && info.IsDir()
}

func (f *FS) stat(name string) (fs.FileInfo, error) {
	return fs.Stat(f.fsys, f.convertToFS(name))
}

func (f *FS) convertToFS(name string) string {
	result := strings.TrimPrefix(path.Clean(name), "/")
	if result == "" {
		return "."
	}

	return result
}

// FindFile returns the first existing stem.<ext> over the supported
// extensions, or "" when there is none.
func (f *FS) FindFile(stem string) string {
	for _, ext := range format.Extensions() {
		extPath := fmt.Sprintf("%s.%s", stem, ext)
		if _, err := f.stat(extPath); err == nil {
			return extPath
		}
	}

	return ""
}

// Documents lists the files directly inside dir whose extension names a
// supported format, sorted. Subdirectories are not entered.
func (f *FS) Documents(dir string) ([]string, error) {
	entries, err := fs.ReadDir(f.fsys, f.convertToFS(dir))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}

	ret := []string{}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if _, err := format.Get(utils.Ext(entry.Name())); err != nil {
			continue
		}

		ret = append(ret, path.Join(dir, entry.Name()))
	}

	if len(ret) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, errors.ErrNoDocuments)
	}

	slices.Sort(ret)

	return ret, nil
}

// Expand replaces directories in paths with the documents inside them and
// resolves extensionless names with FindFile. Other paths pass through so
// later reads report their own errors.
func (f *FS) Expand(paths []string) ([]string, error) {
	ret := []string{}

	for _, p := range paths {
		switch {
		case utils.IsStdin(p):
			ret = append(ret, p)

		case f.IsDir(p):
			docs, err := f.Documents(p)
			if err != nil {
				return nil, err
			}

			ret = append(ret, docs...)

		default:
			ret = append(ret, f.Resolve(p))
		}
	}

	return ret, nil
}

// Resolve returns name unchanged when it exists, otherwise the first
// name.<ext> that does.
func (f *FS) Resolve(name string) string {
	if _, err := f.stat(name); err == nil {
		return name
	}

	if found := f.FindFile(name); found != "" {
		return found
	}

	return name
}
