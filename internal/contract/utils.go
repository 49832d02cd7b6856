package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/fragmede/fundcli/schema"
)

// Color variables for console output.
var (
	AmountColor  = color.New(color.FgGreen)              // amounts in tables
	CappedColor  = color.New(color.FgYellow)             // floor-capped amounts
	NameColor    = color.New(color.FgCyan)               // project and executable names
	LinkColor    = color.New(color.FgBlue)               // donation links
	UnknownColor = color.New(color.FgYellow, color.Bold) // unknown executable headers
)

// FormatAmount renders a currency amount with a "$" prefix and a "*"
// marker when the minimum floor was applied. Color is applied only for
// table output on a terminal.
func FormatAmount(amount decimal.Decimal, capped bool, useColors bool) string {
	text := "$" + amount.StringFixed(2)
	if capped {
		text += "*"
	}
	if !useColors {
		return text
	}
	if capped {
		return CappedColor.Sprint(text)
	}
	return AmountColor.Sprint(text)
}

// SelectOutputFile returns the appropriate file handle for output, based
// on the provided file path. It falls back to os.Stdout for an empty path.
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

// GetHistoryDBPath returns the default Atuin history database location.
func GetHistoryDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "history.db"
	}
	return filepath.Join(homeDir, ".local", "share", "atuin", "history.db")
}

// GetClassifyDBFilePath returns the path to the SQLite DB file for the
// classify store.
func GetClassifyDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".fundcli_classify.db"
	}
	return filepath.Join(homeDir, ".fundcli_classify.db")
}

// PeriodStart returns the cutoff time for a period relative to now.
// The second return value is false for AllPeriod, which has no cutoff.
func PeriodStart(period schema.TimePeriod, now time.Time) (time.Time, bool) {
	switch period {
	case schema.DayPeriod:
		return now.AddDate(0, 0, -1), true
	case schema.WeekPeriod:
		return now.AddDate(0, 0, -7), true
	case schema.MonthPeriod:
		return now.AddDate(0, 0, -30), true
	case schema.YearPeriod:
		return now.AddDate(0, 0, -365), true
	default:
		return time.Time{}, false
	}
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
