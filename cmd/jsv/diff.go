package main

import (
	"fmt"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// unifiedDiff shows what validation changed in one document.
func unifiedDiff(name string, before, after []byte) string {
	edits := myers.ComputeEdits(span.URIFromPath(name), string(before), string(after))
	return fmt.Sprint(gotextdiff.ToUnified("a/"+name, "b/"+name, string(before), edits))
}
