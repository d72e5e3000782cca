package main

import (
	"os"

	"github.com/minj-lang/minj/project"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	entryFlag string
)

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Run a program or project file",
	Args:  cobra.ExactArgs(1),
	Run:   runCommand,
}

func init() {
	runCmd.Flags().StringVar(&entryFlag, "entry", "", "Global method to call after the top level runs")
}

func loadExecutor(path string) *project.Executor {
	p, err := project.Load(path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("Couldn't load project")
		fail(err)
	}
	if entryFlag != "" {
		p.Program.Entrypoint = entryFlag
	}
	exec, err := p.BuildExecutor(os.Stdout, os.Stdin)
	if err != nil {
		fail(err)
	}
	return exec
}

func runCommand(cmd *cobra.Command, args []string) {
	exec := loadExecutor(args[0])
	if _, err := exec.Run(); err != nil {
		fail(err)
	}
}
