package stylesheet

import "strings"

// Node is a top-level or nested stylesheet node: a rule, an at-rule, a
// declaration or a comment.
type Node interface {
	// write serializes the node including its leading whitespace
	write(sb *strings.Builder)
	// raws returns the whitespace that precedes the node
	raws() *string
}

// Root is a parsed stylesheet.
type Root struct {
	Nodes []Node
	After string // trailing whitespace after the last node
}

// Rule is a qualified rule: a selector followed by a block.
type Rule struct {
	Before   string
	Selector string
	Between  string // whitespace between selector and "{"
	Nodes    []Node
	After    string // whitespace before "}"
}

// AtRule is a rule starting with "@". Nodes is nil when the at-rule has no
// block, e.g. @import "a.css";
type AtRule struct {
	Before    string
	Name      string // without "@"
	AfterName string
	Params    string
	Between   string
	HasBlock  bool
	Nodes     []Node
	After     string
	Semicolon bool
}

// Declaration is a property/value pair.
type Declaration struct {
	Before     string
	Prop       string
	Between    string // colon plus surrounding whitespace
	Value      string
	AfterValue string // whitespace between value and ";" or "}"
	Semicolon  bool

	// Offset is the byte offset of Prop in the parsed source. It is not
	// updated when raws or Value change.
	Offset int
}

// ValueOffset returns the byte offset of Value in the parsed source.
func (d *Declaration) ValueOffset() int {
	return d.Offset + len(d.Prop) + len(d.Between)
}

// Comment is a /* ... */ comment between rules or declarations.
type Comment struct {
	Before string
	Text   string // without delimiters
}

// String serializes the stylesheet. For a parsed, unmodified Root the result
// is identical to the parsed source.
func (r *Root) String() string {
	var sb strings.Builder
	writeNodes(&sb, r.Nodes)
	sb.WriteString(r.After)
	return sb.String()
}

func writeNodes(sb *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		n.write(sb)
	}
}

func (r *Rule) write(sb *strings.Builder) {
	sb.WriteString(r.Before)
	sb.WriteString(r.Selector)
	sb.WriteString(r.Between)
	sb.WriteByte('{')
	writeNodes(sb, r.Nodes)
	sb.WriteString(r.After)
	sb.WriteByte('}')
}

func (r *Rule) raws() *string { return &r.Before }

func (a *AtRule) write(sb *strings.Builder) {
	sb.WriteString(a.Before)
	sb.WriteByte('@')
	sb.WriteString(a.Name)
	sb.WriteString(a.AfterName)
	sb.WriteString(a.Params)
	sb.WriteString(a.Between)
	if a.HasBlock {
		sb.WriteByte('{')
		writeNodes(sb, a.Nodes)
		sb.WriteString(a.After)
		sb.WriteByte('}')
	}
	if a.Semicolon {
		sb.WriteByte(';')
	}
}

func (a *AtRule) raws() *string { return &a.Before }

func (d *Declaration) write(sb *strings.Builder) {
	sb.WriteString(d.Before)
	sb.WriteString(d.Prop)
	sb.WriteString(d.Between)
	sb.WriteString(d.Value)
	sb.WriteString(d.AfterValue)
	if d.Semicolon {
		sb.WriteByte(';')
	}
}

func (d *Declaration) raws() *string { return &d.Before }

func (c *Comment) write(sb *strings.Builder) {
	sb.WriteString(c.Before)
	sb.WriteString("/*")
	sb.WriteString(c.Text)
	sb.WriteString("*/")
}

func (c *Comment) raws() *string { return &c.Before }

// String serializes a single node including its leading whitespace.
func String(n Node) string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}
