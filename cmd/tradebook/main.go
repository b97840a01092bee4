package main

import (
	"github.com/quarzen/tradebook/cmd/tradebook/commands"
)

// Build-time variables injected via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.Version = version
	commands.Commit = commit
	commands.Date = date

	if err := commands.Execute(); err != nil {
		commands.Exit("Error: %v", err)
	}
}
