/*
Copyright © 2025 tsubasa-k2

gitmuse - AI-generated gitmoji commit messages
*/
package main

import (
	"os"

	"github.com/tsubasa-k2/gitmuse/internal/cli"
)

// Version information (injected at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	cli.SetVersionInfo(Version, GitCommit, BuildTime)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
