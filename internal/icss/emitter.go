package icss

import (
	"strings"

	"github.com/yacobolo/cssurl/internal/stylesheet"
)

const defaultExport = "default"

// Emit turns the alias table into one import spec per path, in alias order.
func Emit(table *AliasTable) []ImportSpec {
	specs := make([]ImportSpec, 0, table.Len())
	for _, path := range table.Paths() {
		alias, _ := table.Alias(path)
		specs = append(specs, ImportSpec{
			Path:     path,
			Bindings: []Binding{{Alias: alias, Export: defaultExport}},
		})
	}
	return specs
}

// ImportRules builds the :import rules for specs:
//
//	:import("./a.png") {
//	  __url_0: default
//	}
func ImportRules(specs []ImportSpec) []stylesheet.Node {
	rules := make([]stylesheet.Node, 0, len(specs))
	for i, spec := range specs {
		rule := &stylesheet.Rule{
			Selector: ":import(" + quotePath(spec.Path) + ")",
			Between:  " ",
			After:    "\n",
		}
		if i > 0 {
			rule.Before = "\n"
		}
		for _, b := range spec.Bindings {
			rule.Nodes = append(rule.Nodes, &stylesheet.Declaration{
				Before:  "\n  ",
				Prop:    b.Alias,
				Between: ": ",
				Value:   b.Export,
			})
		}
		rules = append(rules, rule)
	}
	return rules
}

// Prepend inserts rules before every existing node of root. Existing import
// rules are neither merged nor deduplicated.
func Prepend(root *stylesheet.Root, rules []stylesheet.Node) {
	root.Prepend(rules...)
}

// quotePath wraps path in double quotes. Paths keep their original escapes;
// only bare double quotes (from single-quoted urls) need escaping.
func quotePath(path string) string {
	var sb strings.Builder
	sb.Grow(len(path) + 2)
	sb.WriteByte('"')
	escaped := false
	for i := 0; i < len(path); i++ {
		c := path[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	sb.WriteByte('"')
	return sb.String()
}
