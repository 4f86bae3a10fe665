package main

import (
	"os"

	"github.com/ardsim/engine/cmd/ardsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
