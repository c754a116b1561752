package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/averykuo/ghpulse/schema"
	"github.com/fatih/color"
)

// Trend glyphs shown next to metric changes.
const (
	UpGlyph   = "↑"
	DownGlyph = "↓"
	FlatGlyph = "→"
)

// Color variables for console output.
var (
	PositiveColor = color.New(color.FgGreen, color.Bold) // growth
	NegativeColor = color.New(color.FgRed, color.Bold)   // decline
	NeutralColor  = color.New(color.FgWhite)             // no change
)

// GetPlainTrendLabel returns a plain text trend glyph for a change direction.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainTrendLabel(d schema.Direction) string {
	switch d {
	case schema.PositiveDirection:
		return UpGlyph
	case schema.NegativeDirection:
		return DownGlyph
	default:
		return FlatGlyph
	}
}

// GetColorTrendLabel returns a colored trend glyph for console output (table).
// It uses GetPlainTrendLabel to determine the glyph, then applies the color.
func GetColorTrendLabel(d schema.Direction) string {
	text := GetPlainTrendLabel(d)

	switch d {
	case schema.PositiveDirection:
		return PositiveColor.Sprint(text)
	case schema.NegativeDirection:
		return NegativeColor.Sprint(text)
	default:
		return NeutralColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
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

// GetCacheDBFilePath returns the path to the SQLite DB file for range cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".ghpulse_cache.db"
	}
	return filepath.Join(homeDir, ".ghpulse_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for load history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".ghpulse_history.db"
	}
	return filepath.Join(homeDir, ".ghpulse_history.db")
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

// TruncateLabel truncates a label to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 so there is space for the ellipsis and at least one
// character of content.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}
