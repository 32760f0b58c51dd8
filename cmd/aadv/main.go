// main is the entry point for the aadv CLI.
package main

import (
	"github.com/sbcounts/aadv/cmd"
	"github.com/sbcounts/aadv/internal/contract"
)

func main() {
	err := cmd.Execute()
	if closeErr := cmd.CloseHistory(); closeErr != nil {
		contract.LogWarn("Failed to close history store", closeErr)
	}
	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
