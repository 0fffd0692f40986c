package version

import (
	"fmt"
	"os"
	"runtime/debug"
)

func GetVersion() *debug.BuildInfo {
	bi, _ := debug.ReadBuildInfo()
	return bi
}

// Version returns the main module version, "(devel)" for local builds.
func Version() string {
	bi := GetVersion()
	if bi == nil || bi.Main.Version == "" {
		return "(devel)"
	}

	return bi.Main.Version
}

// PrintVersion prints build information and exits when requested by flag or
// by the JSV_VERSION environment variable.
func PrintVersion(requested bool) {
	if !requested && os.Getenv("JSV_VERSION") == "" {
		return
	}

	bi := GetVersion()
	if bi == nil {
		fmt.Fprintf(os.Stderr, "ReadBuildInfo() failed\n")
		os.Exit(1)
	}

	fmt.Printf("%s", bi)
	os.Exit(0)
}
