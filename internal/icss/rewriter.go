package icss

import "github.com/yacobolo/cssurl/internal/valueparser"

// urlMatch is a url function scheduled for replacement
type urlMatch struct {
	fn    *valueparser.Function
	alias string
}

// Apply replaces the argument of every aliased url function in records with
// its alias and writes the serialized tree back to the declaration. Urls
// without an alias (rejected by the filter) are left alone. It returns the
// number of url occurrences replaced.
func Apply(records []TraversalRecord, table *AliasTable) int {
	replaced := 0

	for _, record := range records {
		// Collect first, then mutate.
		var matches []urlMatch
		WalkURLs(record.Tree, func(fn *valueparser.Function, content string) {
			if alias, ok := table.Alias(content); ok {
				matches = append(matches, urlMatch{fn: fn, alias: alias})
			}
		})

		for _, m := range matches {
			m.fn.Nodes = valueparser.Nodes{&valueparser.Word{Value: m.alias}}
		}
		replaced += len(matches)

		record.Decl.Value = valueparser.Stringify(record.Tree)
	}

	return replaced
}
