package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version is the application version. It is overridden at build time with
// -ldflags "-X github.com/agbru/pitaylor/internal/app.Version=v1.2.3".
var Version = "dev"

// HasVersionFlag reports whether args request the version. Only arguments
// before a "--" terminator are considered.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "-V", "--version", "-version":
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner to out.
func PrintVersion(out io.Writer, program string) {
	fmt.Fprintf(out, "%s %s (%s, %s/%s)\n", program, Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
