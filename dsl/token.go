package dsl

import "fmt"

type TokenType int

const (
	TokenTypeEOF TokenType = iota
	TokenTypeNumber
	TokenTypeFraction
	TokenTypeString
	TokenTypeKeyword
	TokenTypeIdentifier
	TokenTypeDirection
	TokenTypeLBrace
	TokenTypeRBrace
)

var tokenTypeNames = map[TokenType]string{
	TokenTypeEOF:        "EOF",
	TokenTypeNumber:     "Number",
	TokenTypeFraction:   "Fraction",
	TokenTypeString:     "String",
	TokenTypeKeyword:    "Keyword",
	TokenTypeIdentifier: "Identifier",
	TokenTypeDirection:  "Direction",
	TokenTypeLBrace:     "LBrace",
	TokenTypeRBrace:     "RBrace",
}

func (tt TokenType) String() string {
	if name, ok := tokenTypeNames[tt]; ok {
		return name
	}
	panic(fmt.Sprintf("unexpected TokenType: %d", tt))
}

// Token is a single lexical unit of DSL source.
type Token struct {
	Type  TokenType
	Value string
	Line  int
	Col   int
}

func (t *Token) String() string {
	if t.Type == TokenTypeEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Value)
}

// Keywords of the machinist DSL. Anything matching the identifier charset
// that is not listed here lexes as an identifier.
var keywords = map[string]bool{
	"setup": true, "zero": true, "material": true, "stock": true,
	"units": true, "inch": true, "mm": true,
	"z-min": true, "y-limit": true,
	"tool": true, "dia": true, "flutes": true, "length": true,
	"stickout": true, "max-rpm": true,
	"hss": true, "carbide": true, "cobalt": true, "ceramic": true,
	"cut": true, "drill": true, "pocket": true, "profile": true,
	"chamfer": true, "deburr": true, "face": true,
	"rect": true, "circle": true, "hole": true,
	"at": true, "thru": true, "depth": true, "peck": true,
	"inside": true, "outside": true, "on": true, "offset": true,
	"feed": true, "rpm": true, "stepdown": true, "stepover": true,
	"finish": true,
	"left":   true, "right": true, "center": true,
	"front": true, "back": true, "top": true, "bottom": true,
}
