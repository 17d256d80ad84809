// Package main is the entry point for the chatscribe CLI.
package main

import (
	"os"

	"github.com/chatscribe/chatscribe/cmd/chatscribe/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
