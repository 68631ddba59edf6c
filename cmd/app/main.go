package main

import (
	"os"

	"acadiasafe/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
