// Command brewin is the reference CLI for the Brewin interpreter.
package main

import (
	"fmt"
	"os"

	"github.com/dinothaurs/cs131interpretor/cmd/brewin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
