package main

import (
	"os"

	"github.com/rajiknows/mockchain/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
