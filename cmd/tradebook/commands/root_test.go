package commands

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintErr(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetErr(&buf)
	defer rootCmd.SetErr(nil)

	// Exit reports errors through this path before terminating the process.
	PrintErr("Error: %v", errors.New("boom"))

	assert.Equal(t, "Error: boom\n", buf.String())
}

func TestRootHasCoreSubcommands(t *testing.T) {
	expected := []string{
		"version", "start", "stop", "init", "migrate", "status",
		"logs", "user", "symbols", "mistakes", "analytics", "config",
	}

	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, names[name], "missing subcommand %q", name)
	}
}
