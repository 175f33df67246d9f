// Command aslc is the ASL compiler front end.
package main

import (
	"fmt"
	"os"

	"github.com/aslc/aslc/cmd/aslc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
