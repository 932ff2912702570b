package outwriter

import (
	"os"

	"github.com/huangsam/spendwrap/internal/contract"
	"golang.org/x/term"
)

// Fixed columns of the widest summary table: Rank + Spend + Share + Label.
const fixedColumnsWidth = 45

// GetMaxTableNameWidth calculates the maximum width for item titles in table output
// based on terminal width and table configuration.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth <= 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // CI and pipes
		} else {
			termWidth = detectedWidth
		}
	}

	// Borders, separators and padding
	available := termWidth - fixedColumnsWidth - 10
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
