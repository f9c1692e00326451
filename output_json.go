package cssurl

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Files     []JSONFile  `json:"files"`
}

// JSONSummary contains high-level run counts
type JSONSummary struct {
	FilesScanned int `json:"files_scanned"`
	FilesSkipped int `json:"files_skipped"`
	FilesChanged int `json:"files_changed"`
	FilesFailed  int `json:"files_failed"`
	Imports      int `json:"imports"`
	URLs         int `json:"urls"`
}

// JSONFile represents the outcome for a single stylesheet
type JSONFile struct {
	Path         string       `json:"path"`
	Destination  string       `json:"destination,omitempty"`
	Changed      bool         `json:"changed"`
	Declarations int          `json:"declarations"`
	URLs         int          `json:"urls"`
	Imports      []JSONImport `json:"imports"`
	Error        string       `json:"error,omitempty"`
	Line         int          `json:"line,omitempty"`   // Error position, 1-based
	Column       int          `json:"column,omitempty"` // Error position, 1-based
}

// JSONImport represents one generated :import rule
type JSONImport struct {
	Path  string `json:"path"`
	Alias string `json:"alias"`
}

// WriteJSON writes the run result as JSON
func WriteJSON(w io.Writer, result *RunResult) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts RunResult to JSONOutput
func buildJSONOutput(result *RunResult) JSONOutput {
	summary := JSONSummary{
		FilesScanned: result.FilesScanned,
		FilesSkipped: result.FilesSkipped,
		FilesChanged: result.FilesChanged,
		FilesFailed:  result.FilesFailed,
	}

	files := make([]JSONFile, len(result.Files))
	for i, f := range result.Files {
		imports := make([]JSONImport, 0, len(f.Imports))
		for _, spec := range f.Imports {
			for _, b := range spec.Bindings {
				imports = append(imports, JSONImport{Path: spec.Path, Alias: b.Alias})
			}
		}

		jf := JSONFile{
			Path:         f.Path,
			Destination:  f.Destination,
			Changed:      f.Changed,
			Declarations: f.Declarations,
			URLs:         f.URLs,
			Imports:      imports,
		}
		if f.Err != nil {
			jf.Error = f.Err.Error()
		}
		if f.Issue != nil {
			jf.Error = f.Issue.Text
			jf.Line = f.Issue.Pos.Line
			jf.Column = f.Issue.Pos.Column
		}
		files[i] = jf

		summary.Imports += len(f.Imports)
		summary.URLs += f.URLs
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary:   summary,
		Files:     files,
	}
}
