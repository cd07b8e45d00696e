// CLI entry point for VisaPath-Intelligence.
package main

import (
	"os"

	"github.com/turtacn/VisaPath-Intelligence/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

//Personal.AI order the ending
