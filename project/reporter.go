package project

import (
	"fmt"
	"io"
)

// Reporter receives progress lines while a program runs under the tracer.
type Reporter interface {
	Printf(format string, args ...any)
}

// SilentReporter drops everything.
type SilentReporter struct{}

func (r *SilentReporter) Printf(format string, args ...any) {}

// ColorReporter writes to Writer, typically stderr. Callers color the
// lines themselves with the Format helpers.
type ColorReporter struct {
	Writer io.Writer
}

func (r *ColorReporter) Printf(format string, args ...any) {
	fmt.Fprintf(r.Writer, format, args...)
}
