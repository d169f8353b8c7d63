package main

import (
	"os"

	"github.com/lugondev/go-amm/cmd/amm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
