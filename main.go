package main

import (
	"os"

	"github.com/eark-tools/ipcheck/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
