package icss

import (
	"github.com/yacobolo/cssurl/internal/stylesheet"
	"github.com/yacobolo/cssurl/internal/valueparser"
)

// Filter decides whether a url is externalized into an import. It receives
// the trimmed url content.
type Filter func(url string) bool

// Options configures a single Process call.
type Options struct {
	// Filter replaces DefaultFilter when set.
	Filter Filter
}

// TraversalRecord ties a declaration to its parsed value and the urls
// collected from it, in left-to-right order.
type TraversalRecord struct {
	Decl     *stylesheet.Declaration
	Tree     valueparser.Nodes
	Contents []string
}

// Binding binds a local alias to an exported name of an imported path.
type Binding struct {
	Alias  string // "__url_0"
	Export string // always "default"
}

// ImportSpec describes one :import rule.
type ImportSpec struct {
	Path     string
	Bindings []Binding
}

// Result summarizes what Process changed.
type Result struct {
	Imports      []ImportSpec // in alias order
	Declarations int          // declarations rewritten
	URLs         int          // url() occurrences rewritten
}

// Changed reports whether the stylesheet was modified.
func (r *Result) Changed() bool {
	return len(r.Imports) > 0
}

// Config holds file runner configuration
type Config struct {
	SourceDir        string   // "web/styles"
	Includes         []string // ["**/*.css"]
	OutputDir        string   // "" rewrites files in place
	Stdout           bool     // Print results instead of writing files
	Check            bool     // Report files that would change, write nothing
	RespectGitignore bool     // Skip files matched by ./.gitignore (default: true)
	Verbose          bool
	Filter           FilterConfig
}

// FilterConfig materializes into a Filter. All wins over patterns; with
// neither set the default filter applies.
type FilterConfig struct {
	All     bool     // Externalize every non-empty url
	Include []string // doublestar patterns a url must match
	Exclude []string // doublestar patterns a url must not match
}

// FileResult is the outcome for a single stylesheet
type FileResult struct {
	Path         string
	Destination  string // "" in check and stdout modes
	Imports      []ImportSpec
	Declarations int
	URLs         int
	Changed      bool
	Output       string // Transformed CSS, kept only in stdout mode
	Err          error
	Issue        *Issue // Err located in the source, when it was parsed
}

// RunResult contains run stats
type RunResult struct {
	Files        []FileResult
	FilesScanned int
	FilesSkipped int // Ignored by .gitignore
	FilesChanged int
	FilesFailed  int
}

// OutputFormat represents the report output format
type OutputFormat string

const (
	// OutputText prints one line per changed file plus a summary
	OutputText OutputFormat = "text"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
)
