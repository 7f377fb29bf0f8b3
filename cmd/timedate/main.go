package main

import (
	"os"

	"github.com/ngrash/timedate/cmd/timedate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
