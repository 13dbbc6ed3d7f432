// Command inequality runs agent-based wealth inequality simulations.
//
// Usage:
//
//	inequality run --policy=fascism --population=200 --steps=100 [--db=runs.db]
//	inequality compare --steps=100 [--policies=econophysics,ubi]
//	inequality policies
//	inequality runs --db=runs.db [run-id]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
