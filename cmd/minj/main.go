package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/minj-lang/minj/project"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "minj",
	Short: "Run MinJ programs",
	Long:  "minj runs programs written in MinJ, a small class-based scripting language, and can trace how each top-level declaration changes the global state.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid log level '%s', using 'info'\n", logLevel)
			level = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(level)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Set log level (trace, debug, info, warn, error)")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(traceCmd)
}

// exitCode maps a failed run to the process status: 2 when the program
// file could not be read, 1 for everything else.
func exitCode(err error) int {
	var se *project.SourceError
	if errors.As(err, &se) {
		return 2
	}
	return 1
}

func fail(err error) {
	fmt.Fprint(os.Stderr, project.FormatError(err))
	os.Exit(exitCode(err))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
