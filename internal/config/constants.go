// Package config holds small ambient constants used by the CLI. The
// evaluator core does not depend on this package.
package config

// Version is the current ridectl/ride release, set at build time via
// -ldflags "-X github.com/chainscript/ride/internal/config.Version=...".
var Version = "0.1.0"

// DocumentExtensions are the file extensions ridectl recognizes for
// expression and fixture documents.
var DocumentExtensions = []string{".yaml", ".yml", ".json"}

// HasDocumentExt reports whether path ends in a recognized document
// extension.
func HasDocumentExt(path string) bool {
	for _, ext := range DocumentExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// Option constructor names, spelled the way object.Option.Inspect prints
// them. No other package in this module references these constants.
const (
	SomeCtorName = "Some"
	NoneCtorName = "None"
)
