package main

import (
	"os"

	"github.com/pgscout/pgscout/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
