package valueparser

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

const whitespace = " \t\n\r\f"

// token is a lexer token with its byte offset in the parsed value
type token struct {
	tt     css.TokenType
	text   string
	offset int
}

// parser turns lexer tokens of a single declaration value into a node tree
type parser struct {
	src  string
	toks []token
	pos  int
}

// Parse parses a declaration value into a tree of nodes. Serializing the
// result with Nodes.String yields the input unchanged.
//
// Parse fails with a *parse.Error on an unterminated string or a closing
// parenthesis that has no opening counterpart.
func Parse(value string) (Nodes, error) {
	p := &parser{src: value, toks: lex(value, 0)}
	nodes, _, err := p.parseNodes(false)
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

// Stringify serializes nodes back to CSS text.
func Stringify(nodes Nodes) string {
	return nodes.String()
}

func lex(s string, base int) []token {
	lexer := css.NewLexer(parse.NewInputString(s))

	var toks []token
	offset := base
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal
			break
		}
		toks = append(toks, token{tt: tt, text: string(text), offset: offset})
		offset += len(text)
	}
	return toks
}

func (p *parser) errorAt(offset int, msg string, a ...any) error {
	return parse.NewError(strings.NewReader(p.src), offset, msg, a...)
}

// parseNodes consumes tokens until the end of input or, inside a function,
// until the closing parenthesis. The bool result reports whether a closing
// parenthesis was consumed.
func (p *parser) parseNodes(inFunction bool) (Nodes, bool, error) {
	var nodes Nodes
	var word strings.Builder

	flush := func() {
		if word.Len() > 0 {
			nodes = append(nodes, &Word{Value: word.String()})
			word.Reset()
		}
	}

	for p.pos < len(p.toks) {
		t := p.toks[p.pos]
		p.pos++

		switch t.tt {
		case css.WhitespaceToken:
			flush()
			nodes = append(nodes, &Space{Value: t.text})

		case css.CommaToken, css.ColonToken:
			flush()
			nodes = append(nodes, &Div{Value: t.text})

		case css.DelimToken:
			if t.text == "/" {
				flush()
				nodes = append(nodes, &Div{Value: t.text})
				continue
			}
			word.WriteString(t.text)

		case css.StringToken:
			flush()
			nodes = append(nodes, newString(t.text))

		case css.BadStringToken:
			return nil, false, p.errorAt(t.offset, "unterminated string %s", strings.TrimRight(t.text, whitespace))

		case css.CommentToken:
			flush()
			nodes = append(nodes, newComment(t.text))

		case css.URLToken, css.BadURLToken:
			flush()
			fn, err := p.urlFunction(t)
			if err != nil {
				return nil, false, err
			}
			nodes = append(nodes, fn)

		case css.FunctionToken, css.LeftParenthesisToken:
			flush()
			children, closed, err := p.parseNodes(true)
			if err != nil {
				return nil, false, err
			}
			nodes = append(nodes, newFunction(strings.TrimSuffix(t.text, "("), children, closed))

		case css.RightParenthesisToken:
			if !inFunction {
				return nil, false, p.errorAt(t.offset, "unexpected )")
			}
			flush()
			return nodes, true, nil

		default:
			// Identifiers, numbers, hashes, brackets and the rest are opaque
			// and merge into the surrounding word.
			word.WriteString(t.text)
		}
	}

	flush()
	return nodes, false, nil
}

// urlFunction expands a url token (quoted or unquoted) into a function node.
// The lexer yields the whole url(...) as one token.
func (p *parser) urlFunction(t token) (*Function, error) {
	open := strings.IndexByte(t.text, '(')
	fn := &Function{Name: t.text[:open]}

	inner := t.text[open+1:]
	if strings.HasSuffix(inner, ")") {
		inner = inner[:len(inner)-1]
	} else {
		fn.Unclosed = true
	}

	middle := strings.TrimLeft(inner, whitespace)
	fn.Before = inner[:len(inner)-len(middle)]
	trimmed := strings.TrimRight(middle, whitespace)
	fn.After = middle[len(trimmed):]
	middle = trimmed

	switch {
	case middle == "":
	case middle[0] == '"' || middle[0] == '\'':
		sub := &parser{src: p.src, toks: lex(middle, t.offset+open+1+len(fn.Before))}
		children, _, err := sub.parseNodes(false)
		if err != nil {
			return nil, err
		}
		fn.Nodes = children
	default:
		fn.Nodes = Nodes{&Word{Value: middle}}
	}
	return fn, nil
}

// newFunction moves leading and trailing whitespace of the arguments into the
// function's Before/After raws.
func newFunction(name string, children Nodes, closed bool) *Function {
	fn := &Function{Name: name, Unclosed: !closed}
	if len(children) > 0 {
		if sp, ok := children[0].(*Space); ok {
			fn.Before = sp.Value
			children = children[1:]
		}
	}
	if len(children) > 0 {
		if sp, ok := children[len(children)-1].(*Space); ok {
			fn.After = sp.Value
			children = children[:len(children)-1]
		}
	}
	fn.Nodes = children
	return fn
}

func newString(raw string) *String {
	s := &String{Quote: raw[0]}
	body := raw[1:]
	if len(body) > 0 && body[len(body)-1] == s.Quote && !escapedAt(body, len(body)-1) {
		s.Value = body[:len(body)-1]
	} else {
		s.Value = body
		s.Unclosed = true
	}
	return s
}

// escapedAt reports whether the byte at i is preceded by an odd number of
// backslashes.
func escapedAt(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

func newComment(raw string) *Comment {
	body := raw[2:]
	if strings.HasSuffix(body, "*/") {
		return &Comment{Value: body[:len(body)-2]}
	}
	return &Comment{Value: body, Unclosed: true}
}
