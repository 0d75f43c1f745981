// Command minicc is the Mini-C front end's command-line entry point.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/minicc/cmd/minicc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
