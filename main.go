package main

import (
	"os"

	"github.com/mdoksa76/event-planner/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
