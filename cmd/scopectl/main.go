// scopectl runs scope resolution and catalog reports offline, against files
// instead of the service stores. Standard maintainers use it to preview how an
// attribute set scopes before anything is persisted.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "scopectl",
		Short:   "Offline scope resolution and catalog reporting",
		Version: version,
	}
	root.AddCommand(newResolveCmd())
	root.AddCommand(newCoverageCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
