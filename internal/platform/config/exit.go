package config

import (
	"fmt"
	"os"
)

// Exitf writes a formatted error message to stderr and exits with code 1.
// Command mains use it when flag parsing fails before logging is configured.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
