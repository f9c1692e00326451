package icss

import (
	"errors"
	"strings"

	"github.com/tdewolff/parse/v2"
)

// LinterName tags issues in golangci-lint style output
const LinterName = "cssurl"

// Issue is a stylesheet failure located in its source file
type Issue struct {
	FromLinter  string   `json:"FromLinter"`  // "cssurl"
	Text        string   `json:"Text"`        // "unclosed block"
	SourceLines []string `json:"SourceLines"` // Line of the stylesheet with the issue
	Pos         IssuePos `json:"Pos"`         // File location
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "web/styles/app.css"
	Line     int    `json:"Line"`     // 12
	Column   int    `json:"Column"`   // 5 (1-based)
}

// NewIssue locates err in src, the contents of path. Errors that carry no
// position yield an issue with line and column 0.
func NewIssue(path, src string, err error) Issue {
	issue := Issue{
		FromLinter: LinterName,
		Text:       err.Error(),
		Pos:        IssuePos{Filename: path},
	}

	var perr *parse.Error
	if !errors.As(err, &perr) {
		return issue
	}
	issue.Text = perr.Message
	issue.Pos.Line, issue.Pos.Column = perr.Line, perr.Column

	// Value errors are positioned inside the declaration value
	var verr *ValueError
	if errors.As(err, &verr) {
		offset := verr.Decl.ValueOffset() + valueOffset(verr.Decl.Value, perr.Line, perr.Column)
		issue.Pos.Line, issue.Pos.Column, _ = parse.Position(strings.NewReader(src), offset)
		issue.Text = perr.Message + " in " + verr.Decl.Prop + " value"
	}

	if line, ok := sourceLine(src, issue.Pos.Line); ok {
		issue.SourceLines = []string{line}
	}
	return issue
}

// valueOffset converts a 1-based line and rune column inside value to a byte
// offset.
func valueOffset(value string, line, column int) int {
	off := 0
	for l := 1; l < line; l++ {
		i := strings.IndexByte(value[off:], '\n')
		if i < 0 {
			return len(value)
		}
		off += i + 1
	}

	col := 1
	for i := range value[off:] {
		if col == column {
			return off + i
		}
		col++
	}
	return len(value)
}

// sourceLine returns the 1-based line of src without its line terminator
func sourceLine(src string, line int) (string, bool) {
	if line < 1 {
		return "", false
	}
	lines := strings.Split(src, "\n")
	if line > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[line-1], "\r"), true
}
