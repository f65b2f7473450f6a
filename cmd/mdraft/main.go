package main

import (
	"os"

	"github.com/goliatone/go-mdraft/cmd/mdraft/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
