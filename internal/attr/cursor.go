package attr

import (
	"go/scanner"
	gotoken "go/token"
)

type token struct {
	tok gotoken.Token
	lit string
	off int
}

func (t token) text() string {
	if t.lit != "" {
		return t.lit
	}
	if t.tok == gotoken.EOF {
		return ""
	}
	return t.tok.String()
}

// tokenize splits site text into Go tokens. The scanner's automatic
// end-of-line semicolon is dropped.
func tokenize(src string) ([]token, error) {
	fset := gotoken.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var lexErr *GrammarError
	var s scanner.Scanner
	s.Init(file, []byte(src), func(pos gotoken.Position, msg string) {
		if lexErr == nil {
			lexErr = &GrammarError{Offset: pos.Offset, Message: msg}
		}
	}, 0)

	var toks []token
	for {
		pos, tok, lit := s.Scan()
		if tok == gotoken.EOF {
			break
		}
		if tok == gotoken.SEMICOLON && lit == "\n" {
			continue
		}
		// "default" and friends are Go keywords but plain words here.
		if tok.IsKeyword() {
			tok = gotoken.IDENT
		}
		toks = append(toks, token{tok: tok, lit: lit, off: file.Offset(pos)})
	}
	if lexErr != nil {
		return nil, lexErr
	}
	return toks, nil
}

// cursor walks a token slice. end is the offset reported for end of input.
type cursor struct {
	toks []token
	i    int
	end  int
}

func newCursor(src string) (*cursor, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	return &cursor{toks: toks, end: len(src)}, nil
}

func (c *cursor) done() bool {
	return c.i >= len(c.toks)
}

func (c *cursor) peek() token {
	if c.done() {
		return token{tok: gotoken.EOF, off: c.end}
	}
	return c.toks[c.i]
}

func (c *cursor) next() token {
	t := c.peek()
	if !c.done() {
		c.i++
	}
	return t
}

func (c *cursor) accept(tok gotoken.Token) bool {
	if c.peek().tok != tok {
		return false
	}
	c.i++
	return true
}

func (c *cursor) expect(tok gotoken.Token) (token, error) {
	t := c.peek()
	if t.tok != tok {
		want := tok.String()
		if tok == gotoken.IDENT {
			want = "identifier"
		}
		return t, c.unexpected(want)
	}
	c.i++
	return t, nil
}

func (c *cursor) unexpected(expected ...string) *GrammarError {
	t := c.peek()
	return &GrammarError{Offset: t.off, Found: t.text(), Expected: expected}
}

// group consumes a parenthesized token run and returns a cursor over its
// contents.
func (c *cursor) group() (*cursor, error) {
	if _, err := c.expect(gotoken.LPAREN); err != nil {
		return nil, err
	}
	start := c.i
	depth := 1
	for !c.done() {
		switch c.toks[c.i].tok {
		case gotoken.LPAREN:
			depth++
		case gotoken.RPAREN:
			depth--
			if depth == 0 {
				sub := &cursor{toks: c.toks[start:c.i], end: c.toks[c.i].off}
				c.i++
				return sub, nil
			}
		}
		c.i++
	}
	return nil, c.unexpected(")")
}
