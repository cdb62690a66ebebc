// Command prazo is the operator CLI: deadline computation, holiday imports,
// cache maintenance, and schema migrations.
package main

import (
	"fmt"
	"os"

	"github.com/juristech/prazojus/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
