package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version is the application version, overridable at build time with
// -ldflags "-X github.com/agbru/fibmod/internal/app.Version=...".
var Version = "1.0.0"

// HasVersionFlag reports whether the argument list requests the version.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--version", "-version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner to w.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "fibmod %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
