package icss

import (
	"fmt"
	"strings"

	"github.com/yacobolo/cssurl/internal/stylesheet"
	"github.com/yacobolo/cssurl/internal/valueparser"
)

// Scan collects, in document order, every declaration whose value contains
// at least one url accepted by filter. A nil filter accepts every non-empty
// url. Declarations without matches are left out and never parsed twice.
func Scan(root *stylesheet.Root, filter Filter) ([]TraversalRecord, error) {
	var records []TraversalRecord

	err := root.WalkDecls(func(decl *stylesheet.Declaration) error {
		// Cheap reject before parsing the value
		if !hasURL(decl.Value) {
			return nil
		}

		tree, err := valueparser.Parse(decl.Value)
		if err != nil {
			return &ValueError{Decl: decl, Err: err}
		}

		var contents []string
		WalkURLs(tree, func(_ *valueparser.Function, content string) {
			if filter == nil || filter(content) {
				contents = append(contents, content)
			}
		})

		if len(contents) > 0 {
			records = append(records, TraversalRecord{
				Decl:     decl,
				Tree:     tree,
				Contents: contents,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// ValueError reports a declaration whose value could not be parsed. Err is
// positioned relative to the start of the value.
type ValueError struct {
	Decl *stylesheet.Declaration
	Err  error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("parse value of %q: %v", e.Decl.Prop, e.Err)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

// hasURL reports whether value contains "url(" in any letter case
func hasURL(value string) bool {
	return strings.Contains(strings.ToLower(value), "url(")
}
