// Command query-runner exercises the CYYNC search API for a set of sample
// entities and records what each scope returns.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
