package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/cssurl"
)

var rewriteCmd = &cobra.Command{
	Use:     "rewrite",
	Aliases: []string{"rw"},
	Short:   "Rewrite url() references in CSS files",
	Long: `Parse CSS files, replace every externalizable url() with a generated alias
and prepend one :import rule per distinct path.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runRewrite,
}

func init() {
	addRewriteFlags(rewriteCmd)
}

func addRewriteFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("source", ".", "Source CSS directory")
	f.StringSlice("include", nil, "Glob patterns for CSS files to include (default **/*.css)")
	f.String("output-dir", "", "Write results below this directory instead of in place")
	f.Bool("stdout", false, "Print rewritten stylesheets instead of writing files")
	f.Bool("check", false, "Exit 1 if any file would change, write nothing (CI mode)")
	f.String("output-format", "", "Report format: text|json")
	f.Bool("respect-gitignore", true, "Skip files matched by ./.gitignore")
	f.Bool("filter-all", false, "Externalize every url, including absolute and data: urls")
	f.StringSlice("filter-include", nil, "Only externalize urls matching these glob patterns")
	f.StringSlice("filter-exclude", nil, "Never externalize urls matching these glob patterns")
}

func runRewrite(cmd *cobra.Command, _ []string) error {
	config := buildConfig()
	quiet := getBoolWithFallback("quiet", false)
	color := getBoolWithFallback("color", false)

	log := newLogger(os.Stderr, config.Verbose, quiet)
	defer func() { _ = log.Sync() }()

	result, runErr := cssurl.Run(config, log)
	if result == nil {
		return fmt.Errorf("rewrite failed: %w", runErr)
	}

	// Keep stdout clean for the stylesheets themselves
	report := cmd.OutOrStdout()
	if config.Stdout {
		if err := cssurl.WriteStylesheets(cmd.OutOrStdout(), result); err != nil {
			return fmt.Errorf("writing stylesheets: %w", err)
		}
		report = cmd.ErrOrStderr()
	}

	if !quiet {
		format := cssurl.DetermineOutputFormat(getStringWithFallback("output-format", "text"))
		cssurl.WriteOutput(report, result, format, config, color)
	}

	if runErr != nil {
		return fmt.Errorf("%d of %d files failed", result.FilesFailed, result.FilesScanned)
	}
	if config.Check && result.FilesChanged > 0 {
		return fmt.Errorf("%d files need rewriting", result.FilesChanged)
	}

	return nil
}
