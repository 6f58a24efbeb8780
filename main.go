package main

import (
	"os"

	"github.com/recall-labs/recall/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
