package main

import (
	"os"

	"github.com/sigmaspace/ergochain/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
