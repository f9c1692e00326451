// Package main provides the cssurl CLI tool for externalizing stylesheet urls
// into ICSS :import rules.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
