// Command anchor inspects anchored element layouts described in scene files.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/anchor/cmd/anchor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
