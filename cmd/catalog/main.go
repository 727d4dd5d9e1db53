// Command catalog manages a local product catalog.
package main

import (
	"os"

	"github.com/mesh-intelligence/catalog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
