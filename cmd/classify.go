package cmd

import (
	"github.com/huangsam/spendwrap/core"
	"github.com/huangsam/spendwrap/internal/contract"
	"github.com/spf13/cobra"
)

// classifyCmd assigns a category to product titles.
var classifyCmd = &cobra.Command{
	Use:   "classify <title>...",
	Short: "Assign spend categories to product titles",
	Long: `Classify each title with the same keyword tables used by summaries.

A non-blank --category is used as-is for every title.

Examples:
  spendwrap classify "Organic Bananas" "USB-C Charging Cable"
  spendwrap classify "Gift Card" --category Gifts --output csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteClassify(rootCtx, cfg, args); err != nil {
			contract.LogFatal("Cannot classify titles", err)
		}
	},
}
