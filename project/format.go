package project

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/minj-lang/minj/cas"
	"github.com/minj-lang/minj/interp"
	"github.com/minj-lang/minj/syntax"
)

// FormatStep renders one trace step. With details every change is listed,
// otherwise only the number of changes.
func FormatStep(s TraceStep, details bool) string {
	var b strings.Builder
	b.WriteString(color.Gray.Sprintf("#%-3d", s.Index))
	b.WriteString(" ")
	b.WriteString(color.Cyan.Sprintf("%-8s", s.Kind))
	b.WriteString(fmt.Sprintf(" %-8s ", s.Pos))
	b.WriteString(color.Gray.Sprint(s.Hash.String()))
	if s.Seen {
		b.WriteString(color.Yellow.Sprint(" (seen)"))
	}
	if !details {
		if n := len(s.Changes); n > 0 {
			b.WriteString(fmt.Sprintf(" %d change(s)", n))
		}
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString("\n")
	for _, c := range s.Changes {
		b.WriteString(FormatChange(c))
	}
	return b.String()
}

func FormatChange(c cas.Change) string {
	switch c.Kind {
	case cas.Added:
		return fmt.Sprintf("    %s %s: %s\n", color.Green.Sprint(c.Kind), c.Path, c.New)
	case cas.Removed:
		return fmt.Sprintf("    %s %s: %s\n", color.Red.Sprint(c.Kind), c.Path, c.Old)
	}
	return fmt.Sprintf("    %s %s: %s -> %s\n", color.Yellow.Sprint(c.Kind), c.Path, c.Old, c.New)
}

// FormatSummary closes a trace with the number of steps and distinct states.
func FormatSummary(steps []TraceStep) string {
	distinct := make(map[cas.Hash]bool, len(steps))
	for _, s := range steps {
		distinct[s.Hash] = true
	}
	return color.Green.Sprintf("%d steps, %d distinct states\n", len(steps), len(distinct))
}

// FormatError renders a failed run for the terminal.
func FormatError(err error) string {
	var b strings.Builder
	b.WriteString(color.Red.Sprint("error: "))
	var re *interp.RuntimeError
	var pe *syntax.Error
	switch {
	case errors.As(err, &re):
		b.WriteString(color.Bold.Sprint(re.Pos.String()))
		b.WriteString(": ")
		b.WriteString(re.Err.Error())
	case errors.As(err, &pe):
		b.WriteString(color.Bold.Sprint(pe.Pos.String()))
		b.WriteString(": syntax error: ")
		b.WriteString(pe.Msg)
	default:
		b.WriteString(err.Error())
	}
	b.WriteString("\n")
	return b.String()
}
