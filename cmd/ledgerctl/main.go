package main

import (
	"os"

	"github.com/nexiumfounders/subsplit/cmd/ledgerctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
