// Command feedprint computes the carbon and land footprint of farmed salmon
// feed and serves it over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/rshade/feedprint/internal/cli"
	"github.com/rshade/feedprint/pkg/version"
)

func run() error {
	root := cli.NewRootCmd(version.GetVersion())
	return root.Execute()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}
