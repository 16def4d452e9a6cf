package outwriter

import (
	"os"

	"github.com/huangsam/attrition/internal/contract"
	"golang.org/x/term"
)

// Bounds of the flexible text column in tables.
const (
	minTextWidth = 12
	maxTextWidth = 48
)

// GetMaxTableTextWidth calculates the maximum width for the flexible text column
// of a table (a label, a name, a list of drivers) based on terminal width and
// the space reserved by the fixed columns.
func GetMaxTableTextWidth(cfg *contract.Config, reserved int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for table borders, separators, and padding
	available := termWidth - reserved - 10
	if available < minTextWidth {
		return minTextWidth
	}
	if available > maxTextWidth {
		return maxTextWidth
	}
	return available
}

// isNarrow reports whether the table should abbreviate long names.
func isNarrow(cfg *contract.Config, reserved int) bool {
	return GetMaxTableTextWidth(cfg, reserved) < 24
}
