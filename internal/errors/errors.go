package errors

import (
	"fmt"
	"os"

	"github.com/julianstephens/dayly/internal/logger"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// SaveWarning is the user-facing text attached to a result whose mutation
// happened in memory but could not be written to storage.
func SaveWarning(err error) string {
	if err == nil {
		return ""
	}
	return "Failed to save, please retry. Your progress may not survive a restart."
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
