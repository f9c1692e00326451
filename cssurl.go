// Package cssurl externalizes url() references in stylesheets into ICSS
// :import rules.
//
// Every url() whose content passes a filter is replaced by a generated alias
// and the original path moves into an import rule prepended to the sheet:
//
//	.foo { background: url(./a.png) }
//
// becomes
//
//	:import("./a.png") {
//	  __url_0: default
//	}
//	.foo { background: url(__url_0) }
//
// # Library
//
// Rewrite a single stylesheet:
//
//	out, result, err := cssurl.Transform(src, cssurl.Options{})
//
// Rewrite files matching globs under a source directory:
//
//	config := cssurl.Config{
//		SourceDir:        "web/styles",
//		Includes:         []string{"**/*.css"},
//		OutputDir:        "dist/styles",
//		RespectGitignore: true,
//	}
//	result, err := cssurl.Run(config, logger)
//
// # CLI Tool
//
// cssurl also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/cssurl/cmd/cssurl@latest
package cssurl

import (
	"fmt"

	"github.com/yacobolo/cssurl/internal/icss"
	"github.com/yacobolo/cssurl/internal/stylesheet"
)

type (
	Filter       = icss.Filter
	Options      = icss.Options
	Result       = icss.Result
	ImportSpec   = icss.ImportSpec
	Binding      = icss.Binding
	Config       = icss.Config
	FilterConfig = icss.FilterConfig
	FileResult   = icss.FileResult
	RunResult    = icss.RunResult
	OutputFormat = icss.OutputFormat
)

const (
	OutputText = icss.OutputText
	OutputJSON = icss.OutputJSON
)

var (
	// DefaultFilter skips absolute, protocol-relative, fragment and data: urls.
	DefaultFilter = icss.DefaultFilter
	// AllowAll externalizes every non-empty url.
	AllowAll = icss.AllowAll
	// PatternFilter builds a filter from doublestar include and exclude patterns.
	PatternFilter = icss.PatternFilter
)

// Transform parses src, externalizes its urls and serializes the result.
// When nothing is externalized the output equals src.
func Transform(src string, opts Options) (string, *Result, error) {
	root, err := stylesheet.Parse(src)
	if err != nil {
		return "", nil, fmt.Errorf("parse stylesheet: %w", err)
	}

	result, err := icss.Process(root, opts)
	if err != nil {
		return "", nil, err
	}
	if !result.Changed() {
		return src, result, nil
	}
	return root.String(), result, nil
}
