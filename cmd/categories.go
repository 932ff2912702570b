package cmd

import (
	"github.com/huangsam/spendwrap/core"
	"github.com/huangsam/spendwrap/internal/contract"
	"github.com/spf13/cobra"
)

// categoriesCmd lists the classifier tables.
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the ordered keyword tables used for classification",
	Long: `Print every category with its keywords in the order they are tried.

The first table with a matching keyword wins, so earlier tables take precedence.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCategories(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot list categories", err)
		}
	},
}
