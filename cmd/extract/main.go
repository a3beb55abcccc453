package main

import (
	"fmt"
	"os"

	"realty_extractor/cmd/extract/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
