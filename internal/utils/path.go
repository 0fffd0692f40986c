package utils

import (
	"path/filepath"
	"strings"
)

func Ext(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func IsStdin(path string) bool {
	return Stem(path) == "-"
}
