package stylesheet

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

const whitespace = " \t\n\r\f"

type token struct {
	tt     css.TokenType
	text   string
	offset int
}

// parser builds a raw-preserving node tree from lexer tokens
type parser struct {
	src  string
	toks []token
	pos  int
}

// Parse parses CSS source into a Root. Whitespace and comments are kept in
// the node raws so that Root.String reproduces src exactly.
//
// Parse returns a *parse.Error for an unclosed block or comment, a "}"
// without a matching "{", and a declaration without a colon.
func Parse(src string) (*Root, error) {
	p := &parser{src: src}

	lexer := css.NewLexer(parse.NewInputString(src))
	offset := 0
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			break
		}
		p.toks = append(p.toks, token{tt: tt, text: string(text), offset: offset})
		offset += len(text)
	}

	nodes, after, err := p.parseNodes(-1)
	if err != nil {
		return nil, err
	}
	return &Root{Nodes: nodes, After: after}, nil
}

func (p *parser) errorAt(offset int, msg string) error {
	return parse.NewError(strings.NewReader(p.src), offset, msg)
}

// parseNodes parses sibling nodes until EOF, or until the "}" closing the
// block opened at offset open. open is negative at the top level.
func (p *parser) parseNodes(open int) ([]Node, string, error) {
	var nodes []Node
	var before strings.Builder

	for {
		if p.pos >= len(p.toks) {
			if open >= 0 {
				return nil, "", p.errorAt(open, "unclosed block")
			}
			return nodes, before.String(), nil
		}

		t := p.toks[p.pos]
		switch t.tt {
		case css.WhitespaceToken, css.SemicolonToken, css.CDOToken, css.CDCToken:
			// Stray semicolons and HTML comment markers stay in the raws.
			before.WriteString(t.text)
			p.pos++

		case css.CommentToken:
			if len(t.text) < 4 || !strings.HasSuffix(t.text, "*/") {
				return nil, "", p.errorAt(t.offset, "unclosed comment")
			}
			nodes = append(nodes, &Comment{Before: before.String(), Text: t.text[2 : len(t.text)-2]})
			before.Reset()
			p.pos++

		case css.RightBraceToken:
			if open < 0 {
				return nil, "", p.errorAt(t.offset, "unexpected }")
			}
			p.pos++
			return nodes, before.String(), nil

		case css.AtKeywordToken:
			n, err := p.parseAtRule(before.String())
			if err != nil {
				return nil, "", err
			}
			nodes = append(nodes, n)
			before.Reset()

		default:
			n, err := p.parseRuleOrDeclaration(before.String())
			if err != nil {
				return nil, "", err
			}
			nodes = append(nodes, n)
			before.Reset()
		}
	}
}

// collect gathers tokens up to the next ";" outside parentheses, "{" or "}".
// The terminator is left unconsumed; it is ErrorToken at EOF.
func (p *parser) collect() ([]token, token) {
	start := p.pos
	depth := 0
	for p.pos < len(p.toks) {
		t := p.toks[p.pos]
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.SemicolonToken:
			if depth == 0 {
				return p.toks[start:p.pos], t
			}
		case css.LeftBraceToken, css.RightBraceToken:
			return p.toks[start:p.pos], t
		}
		p.pos++
	}
	return p.toks[start:p.pos], token{tt: css.ErrorToken, offset: len(p.src)}
}

func (p *parser) parseAtRule(before string) (*AtRule, error) {
	name := p.toks[p.pos]
	p.pos++

	toks, term := p.collect()
	text := join(toks)
	params := strings.TrimLeft(text, whitespace)
	trimmed := strings.TrimRight(params, whitespace)

	at := &AtRule{
		Before:    before,
		Name:      name.text[1:],
		AfterName: text[:len(text)-len(params)],
		Params:    trimmed,
		Between:   params[len(trimmed):],
	}

	switch term.tt {
	case css.LeftBraceToken:
		p.pos++
		nodes, after, err := p.parseNodes(term.offset)
		if err != nil {
			return nil, err
		}
		at.HasBlock = true
		at.Nodes = nodes
		at.After = after
	case css.SemicolonToken:
		p.pos++
		at.Semicolon = true
	}
	return at, nil
}

func (p *parser) parseRuleOrDeclaration(before string) (Node, error) {
	first := p.toks[p.pos]
	toks, term := p.collect()

	if term.tt == css.LeftBraceToken {
		text := join(toks)
		selector := strings.TrimRight(text, whitespace)
		p.pos++
		nodes, after, err := p.parseNodes(term.offset)
		if err != nil {
			return nil, err
		}
		return &Rule{
			Before:   before,
			Selector: selector,
			Between:  text[len(selector):],
			Nodes:    nodes,
			After:    after,
		}, nil
	}

	colon := -1
	for i, t := range toks {
		if t.tt == css.ColonToken {
			colon = i
			break
		}
	}
	if colon < 0 {
		return nil, p.errorAt(first.offset, "unknown word "+strings.TrimSpace(join(toks)))
	}

	propText := join(toks[:colon])
	prop := strings.TrimRight(propText, whitespace)
	valueText := join(toks[colon+1:])
	rest := strings.TrimLeft(valueText, whitespace)
	value := strings.TrimRight(rest, whitespace)

	decl := &Declaration{
		Before:     before,
		Prop:       prop,
		Between:    propText[len(prop):] + ":" + valueText[:len(valueText)-len(rest)],
		Value:      value,
		AfterValue: rest[len(value):],
		Offset:     first.offset,
	}
	if term.tt == css.SemicolonToken {
		p.pos++
		decl.Semicolon = true
	}
	return decl, nil
}

func join(toks []token) string {
	var sb strings.Builder
	for _, t := range toks {
		sb.WriteString(t.text)
	}
	return sb.String()
}
