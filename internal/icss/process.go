package icss

import "github.com/yacobolo/cssurl/internal/stylesheet"

// Process externalizes the eligible urls of root in place: it rewrites each
// url() argument to an alias and prepends one :import rule per distinct
// path. When no eligible url exists root is left untouched.
//
// Parse failures of a declaration value abort the call before anything is
// modified.
func Process(root *stylesheet.Root, opts Options) (*Result, error) {
	filter := opts.Filter
	if filter == nil {
		filter = DefaultFilter
	}

	records, err := Scan(root, filter)
	if err != nil {
		return nil, err
	}

	table := BuildAliases(records)
	if table.Len() == 0 {
		return &Result{}, nil
	}

	urls := Apply(records, table)
	specs := Emit(table)
	Prepend(root, ImportRules(specs))

	return &Result{
		Imports:      specs,
		Declarations: len(records),
		URLs:         urls,
	}, nil
}
