package main

import (
	"os"

	"github.com/flow-dev/flow/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
