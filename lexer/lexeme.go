// Package lexer turns Yul source text into a stream of lexemes,
// grounded on original_source/src/lexer/* (the Rust lexer this module
// was distilled from) and spec.md §4.A. Unlike the original, which
// regex-splits the whole input up front, yulc's Lexer is pull-based: it
// holds a cursor into the source and produces one Lexeme at a time,
// matching the stateful, single-lexeme-lookahead contract the parser
// needs (spec.md §4.A-B).
package lexer

import "fmt"

// Kind tags the variant a Lexeme carries, mirroring the tagged union in
// spec.md §3 (Keyword(k) | Symbol(s) | Identifier(string) |
// Literal(integer|string|boolean) | EndOfFile).
type Kind int

const (
	KindKeyword Kind = iota
	KindSymbol
	KindIdentifier
	KindLiteral
	KindEndOfFile
)

func (k Kind) String() string {
	switch k {
	case KindKeyword:
		return "keyword"
	case KindSymbol:
		return "symbol"
	case KindIdentifier:
		return "identifier"
	case KindLiteral:
		return "literal"
	case KindEndOfFile:
		return "EOF"
	default:
		return "unknown"
	}
}

// Keyword enumerates the reserved words of spec.md §4.A. Numeric
// int<N>/uint<N> keywords are represented generically via KeywordInt /
// KeywordUInt plus the Bits field on Lexeme, since their bit-width is
// part of the token, not a separate keyword per width.
type Keyword int

const (
	KeywordObject Keyword = iota
	KeywordCode
	KeywordFunction
	KeywordLet
	KeywordIf
	KeywordSwitch
	KeywordCase
	KeywordDefault
	KeywordFor
	KeywordBreak
	KeywordContinue
	KeywordLeave
	KeywordTrue
	KeywordFalse
	KeywordBool
	KeywordInt
	KeywordUInt
	KeywordHex
)

var keywordText = map[string]Keyword{
	"object":   KeywordObject,
	"code":     KeywordCode,
	"function": KeywordFunction,
	"let":      KeywordLet,
	"if":       KeywordIf,
	"switch":   KeywordSwitch,
	"case":     KeywordCase,
	"default":  KeywordDefault,
	"for":      KeywordFor,
	"break":    KeywordBreak,
	"continue": KeywordContinue,
	"leave":    KeywordLeave,
	"true":     KeywordTrue,
	"false":    KeywordFalse,
	"bool":     KeywordBool,
	"hex":      KeywordHex,
}

func (k Keyword) String() string {
	for text, kw := range keywordText {
		if kw == k {
			return text
		}
	}
	switch k {
	case KeywordInt:
		return "int"
	case KeywordUInt:
		return "uint"
	}
	return "<unknown keyword>"
}

// Symbol enumerates the punctuation lexemes of the grammar.
type Symbol int

const (
	SymbolAssignment Symbol = iota // :=
	SymbolArrow                    // ->
	SymbolBraceLeft                // {
	SymbolBraceRight                // }
	SymbolParenLeft                // (
	SymbolParenRight                // )
	SymbolComma                    // ,
	SymbolColon                    // :
)

func (s Symbol) String() string {
	switch s {
	case SymbolAssignment:
		return ":="
	case SymbolArrow:
		return "->"
	case SymbolBraceLeft:
		return "{"
	case SymbolBraceRight:
		return "}"
	case SymbolParenLeft:
		return "("
	case SymbolParenRight:
		return ")"
	case SymbolComma:
		return ","
	case SymbolColon:
		return ":"
	default:
		return "<unknown symbol>"
	}
}

// LiteralKind distinguishes the three literal payload shapes of
// spec.md §3: integer | string | boolean.
type LiteralKind int

const (
	LiteralInteger LiteralKind = iota
	LiteralString
	LiteralBoolean
)

// Literal is the payload of a KindLiteral lexeme.
type Literal struct {
	Kind LiteralKind
	// Value holds the raw textual contents: decimal/hex digits for
	// LiteralInteger (IsHex distinguishes the two), string contents for
	// LiteralString ("true"/"false" for LiteralBoolean).
	Value string
	// IsHex is set for 0x-prefixed integer literals.
	IsHex bool
	// IsHexString is set for hex"..." string literals (spec.md §4.A).
	IsHexString bool
}

// Position records where in the source a lexeme started, for
// diagnostics (spec.md §6 error JSON sourceLocation).
type Position struct {
	Offset int
	Line   int
	Column int
}

// Lexeme is an immutable token produced by the Lexer. Exactly one of
// Keyword/Symbol/Identifier/Literal is meaningful, selected by Kind.
type Lexeme struct {
	Kind       Kind
	Keyword    Keyword
	Symbol     Symbol
	Identifier string
	Literal    Literal
	// Bits carries the numeric width for KeywordInt/KeywordUInt
	// keywords (uint256 -> Bits=256); zero otherwise.
	Bits int
	Pos  Position
}

func (l Lexeme) String() string {
	switch l.Kind {
	case KindKeyword:
		if l.Keyword == KeywordInt || l.Keyword == KeywordUInt {
			return fmt.Sprintf("%s%d", l.Keyword, l.Bits)
		}
		return l.Keyword.String()
	case KindSymbol:
		return l.Symbol.String()
	case KindIdentifier:
		return l.Identifier
	case KindLiteral:
		switch l.Literal.Kind {
		case LiteralString:
			if l.Literal.IsHexString {
				return fmt.Sprintf("hex%q", l.Literal.Value)
			}
			return fmt.Sprintf("%q", l.Literal.Value)
		default:
			return l.Literal.Value
		}
	case KindEndOfFile:
		return "<EOF>"
	default:
		return "<invalid>"
	}
}

// IsEOF reports whether the lexeme is the sentinel end-of-file token.
func (l Lexeme) IsEOF() bool { return l.Kind == KindEndOfFile }
