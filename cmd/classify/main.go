package main

import (
	"os"

	"github.com/puneetripathi/bajaj-frontend/cmd/classify/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
