package main

import (
	"os"

	"github.com/keshon/styrobot/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
