// Package dsl implements the machinist DSL: lexer, AST and parser.
//
// The language describes what to cut (holes, pockets, profiles, slots,
// chamfers) against a stock and a declared zero; feeds and speeds are
// derived downstream. Numbers may be decimals or machinist fractions
// ("5/8"), which lex as a single token.
package dsl

import "fmt"

// LexError reports an unexpected character. The lexer does not attempt
// recovery; the caller aborts the compilation.
type LexError struct {
	Char rune
	Line int
	Col  int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line %d:%d: unexpected character %q", e.Line, e.Col, e.Char)
}

// Lexer tokenizes DSL source. Tokens are pulled one at a time via Next().
type Lexer struct {
	input string
	pos   int
	line  int
	col   int
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1, col: 1}
}

func (lx *Lexer) peekAt(off int) byte {
	if lx.pos+off >= len(lx.input) {
		return 0
	}
	return lx.input[lx.pos+off]
}

func (lx *Lexer) advance() byte {
	c := lx.input[lx.pos]
	lx.pos++
	if c == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return c
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '-'
}

func (lx *Lexer) skipSpaceAndComments() error {
	for lx.pos < len(lx.input) {
		c := lx.peekAt(0)
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f':
			lx.advance()
		case c == ';':
			for lx.pos < len(lx.input) && lx.peekAt(0) != '\n' {
				lx.advance()
			}
		case c == '/' && lx.peekAt(1) == '/':
			for lx.pos < len(lx.input) && lx.peekAt(0) != '\n' {
				lx.advance()
			}
		case c == '/' && lx.peekAt(1) == '*':
			line, col := lx.line, lx.col
			lx.advance()
			lx.advance()
			for {
				if lx.pos >= len(lx.input) {
					return &LexError{Char: '*', Line: line, Col: col}
				}
				if lx.peekAt(0) == '*' && lx.peekAt(1) == '/' {
					lx.advance()
					lx.advance()
					break
				}
				lx.advance()
			}
		default:
			return nil
		}
	}
	return nil
}

// Next returns the next token, or a *LexError on unrecognized input.
// After EOF is returned, further calls keep returning EOF.
func (lx *Lexer) Next() (*Token, error) {
	if err := lx.skipSpaceAndComments(); err != nil {
		return nil, err
	}

	line, col := lx.line, lx.col
	if lx.pos >= len(lx.input) {
		return &Token{Type: TokenTypeEOF, Line: line, Col: col}, nil
	}

	c := lx.peekAt(0)
	switch {
	case c == '{':
		lx.advance()
		return &Token{Type: TokenTypeLBrace, Value: "{", Line: line, Col: col}, nil
	case c == '}':
		lx.advance()
		return &Token{Type: TokenTypeRBrace, Value: "}", Line: line, Col: col}, nil
	case c == '"':
		return lx.lexString(line, col)
	case isDigit(c) || (c == '-' && isDigit(lx.peekAt(1))):
		return lx.lexNumber(line, col)
	case isLetter(c):
		return lx.lexWord(line, col)
	}

	return nil, &LexError{Char: rune(c), Line: line, Col: col}
}

func (lx *Lexer) lexString(line, col int) (*Token, error) {
	lx.advance() // opening quote
	start := lx.pos
	for {
		if lx.pos >= len(lx.input) || lx.peekAt(0) == '\n' {
			return nil, &LexError{Char: '"', Line: line, Col: col}
		}
		if lx.peekAt(0) == '"' {
			break
		}
		lx.advance()
	}
	value := lx.input[start:lx.pos]
	lx.advance() // closing quote
	return &Token{Type: TokenTypeString, Value: value, Line: line, Col: col}, nil
}

// lexNumber scans a decimal or, when an integer is immediately followed
// by "/digits", a machinist fraction. The fraction is kept verbatim; the
// parser resolves a/b so diagnostics can show the exact source form.
func (lx *Lexer) lexNumber(line, col int) (*Token, error) {
	start := lx.pos
	if lx.peekAt(0) == '-' {
		lx.advance()
	}
	for lx.pos < len(lx.input) && isDigit(lx.peekAt(0)) {
		lx.advance()
	}

	if lx.peekAt(0) == '/' && isDigit(lx.peekAt(1)) {
		lx.advance()
		for lx.pos < len(lx.input) && isDigit(lx.peekAt(0)) {
			lx.advance()
		}
		return &Token{Type: TokenTypeFraction, Value: lx.input[start:lx.pos], Line: line, Col: col}, nil
	}

	if lx.peekAt(0) == '.' {
		lx.advance()
		for lx.pos < len(lx.input) && isDigit(lx.peekAt(0)) {
			lx.advance()
		}
	}
	return &Token{Type: TokenTypeNumber, Value: lx.input[start:lx.pos], Line: line, Col: col}, nil
}

// lexWord scans an identifier, keyword or axis direction. A single axis
// letter followed by '+' or '-' (and not more identifier characters, so
// "z-min" stays a keyword) is a direction token like "X+" or "Z-".
func (lx *Lexer) lexWord(line, col int) (*Token, error) {
	c := lx.peekAt(0)
	if (c == 'x' || c == 'y' || c == 'z' || c == 'X' || c == 'Y' || c == 'Z') &&
		(lx.peekAt(1) == '+' || (lx.peekAt(1) == '-' && !isIdentChar(lx.peekAt(2)))) {
		lx.advance()
		d := lx.advance()
		return &Token{Type: TokenTypeDirection, Value: string(upper(c)) + string(d), Line: line, Col: col}, nil
	}

	start := lx.pos
	for lx.pos < len(lx.input) && isIdentChar(lx.peekAt(0)) {
		lx.advance()
	}
	value := lx.input[start:lx.pos]
	if keywords[value] {
		return &Token{Type: TokenTypeKeyword, Value: value, Line: line, Col: col}, nil
	}
	return &Token{Type: TokenTypeIdentifier, Value: value, Line: line, Col: col}, nil
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
