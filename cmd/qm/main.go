// Package main is the entry point for the qm command line tool.
package main

import (
	"github.com/aristath/quartermaster/internal/cli"
)

func main() {
	cli.Execute()
}
