package main

import (
	"os"

	"github.com/asplogic/jshint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
