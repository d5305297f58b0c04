package main

import (
	"os"

	"github.com/kmccarty/recordvault/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
