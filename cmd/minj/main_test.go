package main

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/minj-lang/minj/project"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	unreadable := &project.SourceError{Path: "x.mj", Err: fs.ErrNotExist}
	assert.Equal(t, 2, exitCode(unreadable))
	assert.Equal(t, 2, exitCode(fmt.Errorf("loading: %w", unreadable)))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["run"])
	assert.True(t, names["trace"])
	assert.True(t, names["version"])
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("log-level"))
	assert.NotNil(t, runCmd.Flags().Lookup("entry"))
	assert.NotNil(t, traceCmd.Flags().Lookup("details"))
}
