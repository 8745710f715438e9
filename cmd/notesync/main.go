// Command notesync syncs a markdown vault to a vector database.
package main

import (
	"os"

	"github.com/custodia-labs/notesync-cli/internal/adapters/driving/cli"
)

// version is overridden at build time via
// -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
