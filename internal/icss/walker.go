package icss

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/yacobolo/cssurl/internal/valueparser"
)

var urlName = []byte("url")

// WalkURLs visits every url() function of a value tree in pre-order and
// passes its trimmed content to visit. Functions with empty content are
// skipped. The walker never descends into a url function, so visit may
// replace fn.Nodes.
func WalkURLs(nodes valueparser.Nodes, visit func(fn *valueparser.Function, content string)) {
	for _, n := range nodes {
		fn, ok := n.(*valueparser.Function)
		if !ok {
			continue
		}

		if isURLFunction(fn) {
			if content := urlContent(fn); content != "" {
				visit(fn, content)
			}
			continue
		}

		WalkURLs(fn.Nodes, visit)
	}
}

func isURLFunction(fn *valueparser.Function) bool {
	return parse.EqualFold([]byte(fn.Name), urlName)
}

// urlContent returns the string payload of a quoted url, or the serialized
// arguments of an unquoted one.
func urlContent(fn *valueparser.Function) string {
	if len(fn.Nodes) > 0 {
		if s, ok := fn.Nodes[0].(*valueparser.String); ok {
			return strings.TrimSpace(s.Value)
		}
	}
	return strings.TrimSpace(fn.Nodes.String())
}
