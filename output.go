package cssurl

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/yacobolo/cssurl/internal/icss"
)

// DetermineOutputFormat selects the report format from the --output-format
// flag. Unknown values fall back to text.
func DetermineOutputFormat(formatFlag string) OutputFormat {
	switch formatFlag {
	case "json":
		return OutputJSON
	default:
		return OutputText
	}
}

// WriteOutput writes the run report in the specified format
func WriteOutput(w io.Writer, result *RunResult, format OutputFormat, config Config, forceColor bool) {
	switch format {
	case OutputJSON:
		if err := WriteJSON(w, result); err != nil {
			// Log error but don't crash
			os.Stderr.WriteString("Error writing JSON: " + err.Error() + "\n")
		}

	default:
		reporter := icss.NewReporter(w, config, forceColor)
		reporter.PrintFiles(result.Files)
		reporter.PrintSummary(*result)
	}
}

// WriteStylesheets prints the rewritten stylesheets of a stdout run, sorted by
// path. With more than one file each is preceded by a comment naming it.
func WriteStylesheets(w io.Writer, result *RunResult) error {
	files := make([]FileResult, 0, len(result.Files))
	for _, f := range result.Files {
		if f.Err == nil {
			files = append(files, f)
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	for i, f := range files {
		if len(files) > 1 {
			if i > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "/* %s */\n", f.Path); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, f.Output); err != nil {
			return err
		}
	}
	return nil
}
