// Command thslctl is the command-line client for the ThSL translation
// service.
package main

import (
	"os"

	"github.com/thaisign/thsl-translate/internal/interfaces/cli"
)

var (
	// Injected at build time via -ldflags.
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
