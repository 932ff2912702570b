package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/spendwrap/schema"
)

// Color variables for console output.
var (
	MajorColor    = color.New(color.FgRed, color.Bold)     // dominant share of spend
	NotableColor  = color.New(color.FgMagenta, color.Bold) // clearly visible share
	ModerateColor = color.New(color.FgYellow)              // moderate share, not bold
	MinorColor    = color.New(color.FgCyan)                // informational
	PeakColor     = color.New(color.FgGreen, color.Bold)   // peak month marker
)

// GetColorLabel returns a colored share label for console output (table).
// It uses schema.GetShareLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(share float64) string {
	text := schema.GetShareLabel(share)

	switch text {
	case schema.MajorShare:
		return MajorColor.Sprint(text)
	case schema.NotableShare:
		return NotableColor.Sprint(text)
	case schema.ModerateShare:
		return ModerateColor.Sprint(text)
	default:
		return MinorColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It returns os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".spendwrap_cache.db"
	}
	return filepath.Join(homeDir, ".spendwrap_cache.db")
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for analysis storage.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".spendwrap_analysis.db"
	}
	return filepath.Join(homeDir, ".spendwrap_analysis.db")
}

// TruncateName shortens a name to maxWidth characters with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and at least one character.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
