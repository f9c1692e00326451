package stylesheet

import "slices"

// WalkDecls calls fn for every declaration in document order, descending
// into rule and at-rule blocks. Walking stops at the first error.
func (r *Root) WalkDecls(fn func(*Declaration) error) error {
	return walkDecls(r.Nodes, fn)
}

func walkDecls(nodes []Node, fn func(*Declaration) error) error {
	for _, n := range nodes {
		switch n := n.(type) {
		case *Declaration:
			if err := fn(n); err != nil {
				return err
			}
		case *Rule:
			if err := walkDecls(n.Nodes, fn); err != nil {
				return err
			}
		case *AtRule:
			if err := walkDecls(n.Nodes, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Prepend inserts nodes before every existing node. The first inserted node
// takes over the leading whitespace of the previous first node, which is
// moved onto its own line.
func (r *Root) Prepend(nodes ...Node) {
	if len(nodes) == 0 {
		return
	}
	if len(r.Nodes) > 0 {
		first := r.Nodes[0].raws()
		*nodes[0].raws() = *first
		*first = "\n"
	}
	r.Nodes = slices.Concat(nodes, r.Nodes)
}
