package log

import (
	"io"
	"log"
	"os"
)

// Debug controls debug log output. Set by JSV_DEBUG environment variable by default.
var Debug = os.Getenv("JSV_DEBUG") != ""

var logger = log.New(os.Stderr, "jsv: ", log.LstdFlags)

// SetOutput redirects all log output, e.g. to a buffer in tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Debugf logs a debug message if Debug is true.
func Debugf(format string, v ...any) {
	if !Debug {
		return
	}

	logger.Printf(format, v...)
}

// Warnf logs regardless of Debug, for failures that must not stop the
// caller, such as a watcher error.
func Warnf(format string, v ...any) {
	logger.Printf("warning: "+format, v...)
}
