package main

import (
	"os"

	"github.com/yichen/tinyhabits/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
