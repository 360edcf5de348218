package main

import (
	"os"

	"github.com/alexchase32/lessbuilder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
