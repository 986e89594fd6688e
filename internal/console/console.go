// Package console holds terminal helpers shared by relay binaries.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// NewErrWriter returns a red colored stderr writer.
func NewErrWriter() io.Writer {
	return &coloredWriter{
		w: os.Stderr,
		c: color.New(color.FgRed),
	}
}

// coloredWriter is a small wrapper struct to construct a [color.Color] writer.
type coloredWriter struct {
	w io.Writer
	c *color.Color
}

// Write writes the p bytes using the colored writer.
func (colored *coloredWriter) Write(p []byte) (n int, err error) {
	colored.c.SetWriter(colored.w)
	defer colored.c.UnsetWriter(colored.w)

	return colored.c.Print(string(p))
}

// Fatal prints err in red to stderr and terminates the process with failure status.
func Fatal(binary, version string, err error) {
	fmt.Fprintf(NewErrWriter(), "%s (v%s) error:\n\n\t%s\n", binary, version, err)
	os.Exit(1)
}

// Banner prints green notice to stderr, stdout is reserved for program output.
func Banner(format string, a ...interface{}) {
	color.New(color.FgGreen).Fprintf(os.Stderr, format+"\n", a...)
}
