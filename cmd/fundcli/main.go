// main holds the entry logic for the fundcli CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fragmede/fundcli/cmd"
	"github.com/fragmede/fundcli/internal/classify"
)

func main() {
	err := cmd.Execute()

	// The classify store is opened lazily during command setup; close
	// it regardless of how the command went.
	classify.CloseStore()

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
