package main

import (
	"fmt"
	"os"

	"github.com/gookit/color"
	"github.com/minj-lang/minj/project"
	"github.com/spf13/cobra"
)

var (
	detailsFlag bool
)

var traceCmd = &cobra.Command{
	Use:   "trace FILE",
	Short: "Run a program and report how each top-level declaration changes the globals",
	Args:  cobra.ExactArgs(1),
	Run:   traceCommand,
}

func init() {
	traceCmd.Flags().BoolVar(&detailsFlag, "details", false, "List every changed binding for each step")
	traceCmd.Flags().StringVar(&entryFlag, "entry", "", "Global method to call after the top level runs")
}

func traceCommand(cmd *cobra.Command, args []string) {
	exec := loadExecutor(args[0])
	details := detailsFlag || exec.Project.Trace.Details

	fmt.Fprintln(os.Stderr, color.Cyan.Sprint("Tracing ", exec.Project.Program.File))
	tr := project.NewTracer(&project.ColorReporter{Writer: os.Stderr}, details)
	tr.Attach(exec)
	_, err := exec.Run()
	fmt.Fprint(os.Stderr, project.FormatSummary(tr.Steps))
	if err != nil {
		fail(err)
	}
}
