package valueparser

import "strings"

// Kind identifies the variant of a value node.
type Kind int

// Node kinds
const (
	KindWord Kind = iota
	KindString
	KindSpace
	KindDiv
	KindComment
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindString:
		return "string"
	case KindSpace:
		return "space"
	case KindDiv:
		return "div"
	case KindComment:
		return "comment"
	case KindFunction:
		return "function"
	}
	return "unknown"
}

// Node is a single node of a parsed declaration value.
type Node interface {
	Kind() Kind
	String() string
}

// Nodes is an ordered sequence of sibling nodes.
type Nodes []Node

// String serializes the nodes back to CSS text.
func (ns Nodes) String() string {
	var sb strings.Builder
	for _, n := range ns {
		sb.WriteString(n.String())
	}
	return sb.String()
}

// Word is a bare token such as an identifier, number, hash or operator.
type Word struct {
	Value string
}

func (*Word) Kind() Kind { return KindWord }

func (w *Word) String() string { return w.Value }

// String is a quoted string. Value holds the raw text between the quotes,
// escapes untouched.
type String struct {
	Quote    byte // '"' or '\''
	Value    string
	Unclosed bool
}

func (*String) Kind() Kind { return KindString }

func (s *String) String() string {
	if s.Unclosed {
		return string(s.Quote) + s.Value
	}
	return string(s.Quote) + s.Value + string(s.Quote)
}

// Space is a run of whitespace between other nodes.
type Space struct {
	Value string
}

func (*Space) Kind() Kind { return KindSpace }

func (s *Space) String() string { return s.Value }

// Div is a separator: ",", "/" or ":".
type Div struct {
	Value string
}

func (*Div) Kind() Kind { return KindDiv }

func (d *Div) String() string { return d.Value }

// Comment is a /* ... */ comment inside a value.
type Comment struct {
	Value    string
	Unclosed bool
}

func (*Comment) Kind() Kind { return KindComment }

func (c *Comment) String() string {
	if c.Unclosed {
		return "/*" + c.Value
	}
	return "/*" + c.Value + "*/"
}

// Function is a function call such as rgb(...) or url(...). A plain
// parenthesized group is a Function with an empty Name.
//
// Before and After hold the whitespace between the parentheses and the
// first/last child. They survive a rewrite of Nodes.
type Function struct {
	Name     string
	Before   string
	After    string
	Nodes    Nodes
	Unclosed bool
}

func (*Function) Kind() Kind { return KindFunction }

func (f *Function) String() string {
	var sb strings.Builder
	sb.WriteString(f.Name)
	sb.WriteByte('(')
	sb.WriteString(f.Before)
	sb.WriteString(f.Nodes.String())
	sb.WriteString(f.After)
	if !f.Unclosed {
		sb.WriteByte(')')
	}
	return sb.String()
}
