package main

import (
	"os"

	"github.com/scriptvm/esparser/cmd/esparser/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
