package icss

import "strconv"

const aliasPrefix = "__url_"

// AliasTable maps each externalized path to its local alias. Paths keep the
// order in which they were first seen.
type AliasTable struct {
	paths   []string
	aliases map[string]string
}

// BuildAliases assigns __url_0, __url_1, ... to the distinct contents of
// records, in record order and then left-to-right within a record.
func BuildAliases(records []TraversalRecord) *AliasTable {
	table := &AliasTable{aliases: make(map[string]string)}

	next := 0
	for _, record := range records {
		for _, path := range record.Contents {
			if _, seen := table.aliases[path]; seen {
				continue
			}
			table.aliases[path] = aliasPrefix + strconv.Itoa(next)
			table.paths = append(table.paths, path)
			next++
		}
	}

	return table
}

// Len returns the number of distinct paths.
func (t *AliasTable) Len() int {
	return len(t.paths)
}

// Paths returns the distinct paths in alias order.
func (t *AliasTable) Paths() []string {
	return t.paths
}

// Alias returns the alias assigned to path.
func (t *AliasTable) Alias(path string) (string, bool) {
	alias, ok := t.aliases[path]
	return alias, ok
}
