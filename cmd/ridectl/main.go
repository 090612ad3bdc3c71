// Command ridectl loads an expression document and an optional domain
// fixture, resolves and evaluates the expression, and prints the result.
// It is a thin host around internal/resolver and internal/evaluator,
// not part of the evaluator's contract.
package main

import (
	"os"

	"github.com/chainscript/ride/cmd/ridectl/cmd"
)

func main() {
	if err := cmd.Root().Execute(); err != nil {
		os.Exit(1)
	}
}
