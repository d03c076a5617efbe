// Package parser consumes a lexer.Lexer and produces the Yul AST of
// spec.md §3: Object -> Code -> Block -> Statement -> Expression. The
// grammar follows original_source/src/parser/* (the Rust parser this
// module was distilled from) with the object-nesting extension of
// spec.md §4.B ("object ... { code { ... } object "name_deployed" { ...
// } }" for deploy/runtime pairing).
//
// Per spec.md §9 ("avoid open-ended virtual hierarchies... switch on
// variant tag"), Statement and Expression are tagged unions (a Kind
// plus one meaningful pointer field) rather than interfaces, matching
// the exhaustive-match style the spec calls for.
package parser

import "github.com/luxfi/yulc/lexer"

// Position is re-exported from the lexer so callers don't need to
// import both packages for diagnostics.
type Position = lexer.Position

// TypeKind enumerates the identifier type annotations of spec.md §3.
type TypeKind int

const (
	TypeUInt TypeKind = iota
	TypeInt
	TypeBool
	TypeCustom
)

// Type is the optional type annotation on identifiers and literals.
// The zero value is not valid; use DefaultType() for the unannotated
// default (uint256, spec.md §3).
type Type struct {
	Kind TypeKind
	Bits int    // meaningful for TypeInt / TypeUInt
	Name string // meaningful for TypeCustom
}

// DefaultType returns the implicit type of an unannotated identifier:
// uint256 (spec.md §3: "default UInt(256)").
func DefaultType() Type {
	return Type{Kind: TypeUInt, Bits: 256}
}

func (t Type) String() string {
	switch t.Kind {
	case TypeUInt:
		return "uint256"
	case TypeInt:
		return "int256"
	case TypeBool:
		return "bool"
	case TypeCustom:
		return t.Name
	default:
		return "<unknown type>"
	}
}

// Identifier is a name with an optional type annotation
// ("name : Type" in typed identifier lists, spec.md §4.B).
type Identifier struct {
	Name string
	Type Type
	Pos  Position
}

// LiteralKind mirrors lexer.LiteralKind, giving the parser package its
// own vocabulary independent of lexer internals.
type LiteralKind = lexer.LiteralKind

const (
	LiteralInteger = lexer.LiteralInteger
	LiteralString  = lexer.LiteralString
	LiteralBoolean = lexer.LiteralBoolean
)

// Literal is a literal value: integer, string, or boolean, with an
// optional type annotation (spec.md §3).
type Literal struct {
	Kind        LiteralKind
	Value       string
	IsHex       bool
	IsHexString bool
	Type        Type
	Pos         Position
}

// ExpressionKind tags which field of Expression is meaningful.
type ExpressionKind int

const (
	ExpressionFunctionCall ExpressionKind = iota
	ExpressionIdentifier
	ExpressionLiteral
)

// FunctionCall is `name(arg1, arg2, ...)`.
type FunctionCall struct {
	Name      string
	Arguments []Expression
	Pos       Position
}

// Expression is a tagged union over FunctionCall | Identifier | Literal
// (spec.md §3).
type Expression struct {
	Kind         ExpressionKind
	FunctionCall *FunctionCall
	Identifier   string
	Literal      *Literal
	Pos          Position
}

// StatementKind tags which field of Statement is meaningful.
type StatementKind int

const (
	StatementBlock StatementKind = iota
	StatementFunctionDefinition
	StatementVariableDeclaration
	StatementAssignment
	StatementIf
	StatementSwitch
	StatementForLoop
	StatementExpression
	StatementContinue
	StatementBreak
	StatementLeave
)

// FunctionDefinition is `function name(params) -> rets { body }`.
type FunctionDefinition struct {
	Name       string
	Parameters []Identifier
	Returns    []Identifier
	Body       Block
	Pos        Position
}

// VariableDeclaration is `let name1, name2 := value`. Value is nil for
// a bare declaration with no initializer.
type VariableDeclaration struct {
	Names []Identifier
	Value *Expression
	Pos   Position
}

// Assignment is `name1, name2 := value`.
type Assignment struct {
	Names []string
	Value Expression
	Pos   Position
}

// IfConditional is `if condition { body }`.
type IfConditional struct {
	Condition Expression
	Body      Block
	Pos       Position
}

// SwitchCase is one `case literal { body }` arm.
type SwitchCase struct {
	Literal Literal
	Body    Block
	Pos     Position
}

// Switch is `switch expr case ... case ... default { ... }`. Default is
// nil when absent; spec.md §4.B requires at least one of case/default.
type Switch struct {
	Expression Expression
	Cases      []SwitchCase
	Default    *Block
	Pos        Position
}

// ForLoop is `for { init } condition { post } { body }`. The
// initializer's scope encloses the whole loop (spec.md §4.B).
type ForLoop struct {
	Init      Block
	Condition Expression
	Post      Block
	Body      Block
	Pos       Position
}

// Statement is a tagged union over the eleven statement variants of
// spec.md §3.
type Statement struct {
	Kind                 StatementKind
	Block                *Block
	FunctionDefinition   *FunctionDefinition
	VariableDeclaration  *VariableDeclaration
	Assignment           *Assignment
	If                   *IfConditional
	Switch               *Switch
	ForLoop              *ForLoop
	Expression           *Expression
	Pos                  Position
}

// Block is an ordered sequence of statements, introducing a lexical
// scope (spec.md §3).
type Block struct {
	Statements []Statement
	Pos        Position
}

// Code is the root of an object's executable body.
type Code struct {
	Block Block
	Pos   Position
}

// Object is `object "name" { code { ... } [nested objects...] }`.
// Dependencies is a list of factory-dependency object names; neither
// the parser nor the writers populate it, and nested objects are
// resolved through llvmctx's DependencyRegistry instead.
type Object struct {
	Name         string
	Code         Code
	Nested       []Object
	Dependencies []string
	Pos          Position
}
