package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .cssurl.yaml config file",
	Long:  `Create a .cssurl.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".cssurl.yaml"); err == nil && !force {
			return fmt.Errorf(".cssurl.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".cssurl.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Created .cssurl.yaml")
		return nil
	},
}

const defaultConfig = `# cssurl configuration
# Docs: https://github.com/yacobolo/cssurl

verbose: false

# Stylesheets to rewrite
source: .
include:
  - "**/*.css"
respect-gitignore: true

# Output
output-dir: ""           # empty = rewrite in place
stdout: false
check: false             # exit 1 if any file would change
output-format: text      # text | json

# Which urls become imports. Without patterns, absolute, protocol-relative,
# fragment and data: urls are left alone.
filter:
  all: false
  include: []
  exclude: []
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
