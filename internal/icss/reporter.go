package icss

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Reporter prints run results as plain text
type Reporter struct {
	w         io.Writer
	useColors bool
	check     bool
	verbose   bool
}

// NewReporter creates a new reporter for the given configuration
func NewReporter(w io.Writer, config Config, forceColor bool) *Reporter {
	return &Reporter{
		w:         w,
		useColors: ShouldUseColors(forceColor),
		check:     config.Check,
		verbose:   config.Verbose,
	}
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(force bool) bool {
	// Explicit flag wins
	if force {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// PrintFiles outputs one line per changed or failed file, sorted by path.
// Unchanged files are listed only in verbose mode.
func (r *Reporter) PrintFiles(files []FileResult) {
	sorted := make([]FileResult, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	for _, f := range sorted {
		switch {
		case f.Err != nil:
			r.printFailure(f)
		case f.Changed:
			r.printChange(f)
		case r.verbose:
			fmt.Fprintf(r.w, "%s %s\n",
				RenderStyle(StyleCyan, f.Path+":", r.useColors),
				RenderStyle(StyleGray, "no urls to externalize", r.useColors))
		}
	}
}

func (r *Reporter) printChange(f FileResult) {
	verb := RenderStyle(StyleGreen, "rewrote", r.useColors)
	if r.check {
		verb = RenderStyle(StyleYellow, "would rewrite", r.useColors)
	}

	fmt.Fprintf(r.w, "%s %s %s, %s in %s",
		RenderStyle(StyleCyan, f.Path+":", r.useColors),
		verb,
		pluralizeCount(f.URLs, "url", "urls"),
		pluralizeCount(len(f.Imports), "import", "imports"),
		pluralizeCount(f.Declarations, "declaration", "declarations"))

	if f.Destination != "" && f.Destination != f.Path {
		fmt.Fprintf(r.w, " %s", RenderStyle(StyleGray, "-> "+f.Destination, r.useColors))
	}
	fmt.Fprintln(r.w)

	if r.verbose {
		for _, imp := range f.Imports {
			aliases := make([]string, 0, len(imp.Bindings))
			for _, b := range imp.Bindings {
				aliases = append(aliases, b.Alias)
			}
			fmt.Fprintf(r.w, "\t%s %s\n", strings.Join(aliases, ", "), RenderStyle(StyleGray, imp.Path, r.useColors))
		}
	}
}

func (r *Reporter) printFailure(f FileResult) {
	if f.Issue == nil || f.Issue.Pos.Line == 0 {
		fmt.Fprintf(r.w, "%s %s\n",
			RenderStyle(StyleCyan, f.Path+":", r.useColors),
			RenderStyle(StyleRed, f.Err.Error(), r.useColors))
		return
	}
	r.printIssue(*f.Issue)
}

// printIssue formats a single issue in golangci-lint style
func (r *Reporter) printIssue(issue Issue) {
	// Format: file:line:col: message (linter)
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		RenderStyle(StyleRed, issue.Text, r.useColors),
		RenderStyle(StyleGray, " ("+issue.FromLinter+")", r.useColors))

	// Print source lines with caret indicator
	if len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}

		caret := r.buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column.
// Tabs in the source line are kept so the caret lines up.
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	// Extract the prefix up to the column (0-based index = column - 1)
	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	prefix := sourceLine[:prefixLen]

	// Build padding that matches tabs/spaces in the prefix
	var padding strings.Builder
	for _, ch := range prefix {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintSummary outputs the file count summary
func (r *Reporter) PrintSummary(result RunResult) {
	changed := "changed"
	if r.check {
		changed = "would change"
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintf(r.w, "%s scanned, %d %s", pluralizeCount(result.FilesScanned, "file", "files"), result.FilesChanged, changed)
	if result.FilesSkipped > 0 {
		fmt.Fprintf(r.w, ", %d skipped", result.FilesSkipped)
	}
	if result.FilesFailed > 0 {
		fmt.Fprintf(r.w, ", %s", RenderStyle(StyleRed, fmt.Sprintf("%d failed", result.FilesFailed), r.useColors))
	}
	fmt.Fprintln(r.w)

	if r.check && result.FilesChanged > 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: run without --check to rewrite the files", r.useColors))
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
