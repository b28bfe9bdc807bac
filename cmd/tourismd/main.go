package main

import (
	"fmt"
	"io"
	"os"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() { os.Exit(mainWithArgs(os.Args[1:], os.Stdout, os.Stderr)) }

// mainWithArgs runs the CLI and returns the process exit code.
func mainWithArgs(args []string, stdout, stderr io.Writer) int {
	root := buildRootCmd(&rootOptions{})
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}
	return 0
}
