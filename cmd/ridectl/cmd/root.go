package cmd

import (
	"github.com/spf13/cobra"

	"github.com/chainscript/ride/internal/config"
)

// Root builds the ridectl command tree.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:           "ridectl",
		Short:         "Resolve and evaluate scripting-language expression documents",
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newEvalCmd())
	return root
}
