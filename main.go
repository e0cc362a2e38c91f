// Package main is the entry point for the heldback CLI application.
//
// This file bootstraps the application by invoking the command execution
// logic defined in the cmd package. The heldback tool analyzes package
// registry metadata to find packages whose declared compatibility bounds
// exclude the latest available version of a dependency.
package main

import "github.com/ajxudir/heldback/cmd"

// main initializes and runs the heldback CLI application.
//
// It delegates all command parsing and execution to the cmd package,
// which handles subcommands like report, by, discover, and config.
func main() {
	cmd.Execute()
}
