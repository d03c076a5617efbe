package parser

import (
	"errors"

	"github.com/luxfi/yulc/lexer"
)

// ErrNotIntegerLiteral is returned by Literal.IntegerValue for a
// literal that is not a numeric literal.
var ErrNotIntegerLiteral = errors.New("literal is not an integer")

// Parser is a recursive-descent parser over a lexer.Lexer, grounded on
// original_source/src/parser/* and spec.md §4.B. Each grammar
// production is a method that consumes exactly the lexemes belonging
// to it and returns the resulting AST node.
type Parser struct {
	lex      *lexer.Lexer
	Warnings []Warning
}

// New constructs a Parser over src, lexing directly from the source
// text (the CLI driver is responsible for reading files; spec.md §1
// places file I/O outside the core).
func New(src string) *Parser {
	return &Parser{lex: lexer.New(src)}
}

// NewFromLexer constructs a Parser over an already-created lexer,
// useful for tests that want to inspect lexer state independently.
func NewFromLexer(l *lexer.Lexer) *Parser {
	return &Parser{lex: l}
}

func (p *Parser) peek() (lexer.Lexeme, error) { return p.lex.Peek() }
func (p *Parser) next() (lexer.Lexeme, error) { return p.lex.Next() }

func (p *Parser) expectSymbol(sym lexer.Symbol, hint string) (lexer.Lexeme, error) {
	lex, err := p.next()
	if err != nil {
		return lex, err
	}
	if lex.Kind != lexer.KindSymbol || lex.Symbol != sym {
		return lex, expectedOneOf(lex, hint, sym.String())
	}
	return lex, nil
}

func (p *Parser) expectKeyword(kw lexer.Keyword, hint string) (lexer.Lexeme, error) {
	lex, err := p.next()
	if err != nil {
		return lex, err
	}
	if lex.Kind != lexer.KindKeyword || lex.Keyword != kw {
		return lex, expectedOneOf(lex, hint, kw.String())
	}
	return lex, nil
}

func (p *Parser) expectIdentifier(hint string) (string, Position, error) {
	lex, err := p.next()
	if err != nil {
		return "", Position{}, err
	}
	if lex.Kind != lexer.KindIdentifier {
		return "", lex.Pos, expectedOneOf(lex, hint, "identifier")
	}
	return lex.Identifier, lex.Pos, nil
}

// ParseObject parses a top-level Yul object:
//
//	object "name" { code { ... } [object "name_deployed" { ... }]* }
func (p *Parser) ParseObject() (Object, error) {
	start, err := p.expectKeyword(lexer.KeywordObject, "expected an `object` declaration")
	if err != nil {
		return Object{}, err
	}
	nameLex, err := p.next()
	if err != nil {
		return Object{}, err
	}
	if nameLex.Kind != lexer.KindLiteral || nameLex.Literal.Kind != lexer.LiteralString {
		return Object{}, expectedOneOf(nameLex, "object name must be a string literal", "string literal")
	}
	if _, err := p.expectSymbol(lexer.SymbolBraceLeft, "expected `{` to open the object body"); err != nil {
		return Object{}, err
	}

	code, err := p.parseCode()
	if err != nil {
		return Object{}, err
	}

	obj := Object{Name: nameLex.Literal.Value, Code: code, Pos: start.Pos}
	for {
		lex, err := p.peek()
		if err != nil {
			return Object{}, err
		}
		if lex.Kind == lexer.KindKeyword && lex.Keyword == lexer.KeywordObject {
			nested, err := p.ParseObject()
			if err != nil {
				return Object{}, err
			}
			obj.Nested = append(obj.Nested, nested)
			continue
		}
		break
	}

	if _, err := p.expectSymbol(lexer.SymbolBraceRight, "expected `}` to close the object body"); err != nil {
		return Object{}, err
	}
	return obj, nil
}

func (p *Parser) parseCode() (Code, error) {
	start, err := p.expectKeyword(lexer.KeywordCode, "expected a `code` block")
	if err != nil {
		return Code{}, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return Code{}, err
	}
	return Code{Block: block, Pos: start.Pos}, nil
}

func (p *Parser) parseBlock() (Block, error) {
	start, err := p.expectSymbol(lexer.SymbolBraceLeft, "expected `{` to open a block")
	if err != nil {
		return Block{}, err
	}
	block := Block{Pos: start.Pos}
	for {
		lex, err := p.peek()
		if err != nil {
			return Block{}, err
		}
		if lex.Kind == lexer.KindSymbol && lex.Symbol == lexer.SymbolBraceRight {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return Block{}, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	if _, err := p.expectSymbol(lexer.SymbolBraceRight, "expected `}` to close a block"); err != nil {
		return Block{}, err
	}
	return block, nil
}

func (p *Parser) parseStatement() (Statement, error) {
	lex, err := p.peek()
	if err != nil {
		return Statement{}, err
	}

	switch {
	case lex.Kind == lexer.KindSymbol && lex.Symbol == lexer.SymbolBraceLeft:
		block, err := p.parseBlock()
		if err != nil {
			return Statement{}, err
		}
		return Statement{Kind: StatementBlock, Block: &block, Pos: lex.Pos}, nil

	case lex.Kind == lexer.KindKeyword && lex.Keyword == lexer.KeywordFunction:
		def, err := p.parseFunctionDefinition()
		if err != nil {
			return Statement{}, err
		}
		return Statement{Kind: StatementFunctionDefinition, FunctionDefinition: &def, Pos: lex.Pos}, nil

	case lex.Kind == lexer.KindKeyword && lex.Keyword == lexer.KeywordLet:
		decl, err := p.parseVariableDeclaration()
		if err != nil {
			return Statement{}, err
		}
		return Statement{Kind: StatementVariableDeclaration, VariableDeclaration: &decl, Pos: lex.Pos}, nil

	case lex.Kind == lexer.KindKeyword && lex.Keyword == lexer.KeywordIf:
		ifStmt, err := p.parseIfConditional()
		if err != nil {
			return Statement{}, err
		}
		return Statement{Kind: StatementIf, If: &ifStmt, Pos: lex.Pos}, nil

	case lex.Kind == lexer.KindKeyword && lex.Keyword == lexer.KeywordSwitch:
		sw, err := p.parseSwitch()
		if err != nil {
			return Statement{}, err
		}
		return Statement{Kind: StatementSwitch, Switch: &sw, Pos: lex.Pos}, nil

	case lex.Kind == lexer.KindKeyword && lex.Keyword == lexer.KeywordFor:
		loop, err := p.parseForLoop()
		if err != nil {
			return Statement{}, err
		}
		return Statement{Kind: StatementForLoop, ForLoop: &loop, Pos: lex.Pos}, nil

	case lex.Kind == lexer.KindKeyword && lex.Keyword == lexer.KeywordBreak:
		p.next()
		return Statement{Kind: StatementBreak, Pos: lex.Pos}, nil

	case lex.Kind == lexer.KindKeyword && lex.Keyword == lexer.KeywordContinue:
		p.next()
		return Statement{Kind: StatementContinue, Pos: lex.Pos}, nil

	case lex.Kind == lexer.KindKeyword && lex.Keyword == lexer.KeywordLeave:
		p.next()
		return Statement{Kind: StatementLeave, Pos: lex.Pos}, nil

	case lex.Kind == lexer.KindIdentifier:
		return p.parseAssignmentOrExpressionStatement()

	default:
		return Statement{}, expectedOneOf(lex, "expected a statement",
			"block", "function", "let", "if", "switch", "for", "break", "continue", "leave", "identifier")
	}
}

// parseAssignmentOrExpressionStatement disambiguates `name1, name2 :=
// expr` from a bare function-call expression statement by looking one
// token past the first identifier (spec.md §4.B grammar).
func (p *Parser) parseAssignmentOrExpressionStatement() (Statement, error) {
	first, firstPos, err := p.expectIdentifier("expected an identifier")
	if err != nil {
		return Statement{}, err
	}

	lex, err := p.peek()
	if err != nil {
		return Statement{}, err
	}

	if lex.Kind == lexer.KindSymbol && lex.Symbol == lexer.SymbolParenLeft {
		call, err := p.parseFunctionCallArguments(first, firstPos)
		if err != nil {
			return Statement{}, err
		}
		if msg, ok := checkBuiltinWarning(call.Name); ok {
			p.Warnings = append(p.Warnings, Warning{Message: msg, Pos: firstPos})
		}
		expr := Expression{Kind: ExpressionFunctionCall, FunctionCall: &call, Pos: firstPos}
		return Statement{Kind: StatementExpression, Expression: &expr, Pos: firstPos}, nil
	}

	names := []string{first}
	for lex.Kind == lexer.KindSymbol && lex.Symbol == lexer.SymbolComma {
		p.next()
		name, _, err := p.expectIdentifier("expected an identifier after `,`")
		if err != nil {
			return Statement{}, err
		}
		names = append(names, name)
		lex, err = p.peek()
		if err != nil {
			return Statement{}, err
		}
	}
	if _, err := p.expectSymbol(lexer.SymbolAssignment, "expected `:=` in an assignment"); err != nil {
		return Statement{}, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return Statement{}, err
	}
	assign := Assignment{Names: names, Value: value, Pos: firstPos}
	return Statement{Kind: StatementAssignment, Assignment: &assign, Pos: firstPos}, nil
}

func (p *Parser) parseVariableDeclaration() (VariableDeclaration, error) {
	start, err := p.expectKeyword(lexer.KeywordLet, "expected `let`")
	if err != nil {
		return VariableDeclaration{}, err
	}
	names, err := p.parseTypedIdentifierList()
	if err != nil {
		return VariableDeclaration{}, err
	}
	decl := VariableDeclaration{Names: names, Pos: start.Pos}

	lex, err := p.peek()
	if err != nil {
		return VariableDeclaration{}, err
	}
	if lex.Kind == lexer.KindSymbol && lex.Symbol == lexer.SymbolAssignment {
		p.next()
		value, err := p.parseExpression()
		if err != nil {
			return VariableDeclaration{}, err
		}
		decl.Value = &value
	}
	return decl, nil
}

// parseTypedIdentifierList parses `name (: Type)? (, name (: Type)?)*`
// (spec.md §4.B).
func (p *Parser) parseTypedIdentifierList() ([]Identifier, error) {
	var idents []Identifier
	for {
		name, pos, err := p.expectIdentifier("expected an identifier")
		if err != nil {
			return nil, err
		}
		ident := Identifier{Name: name, Type: DefaultType(), Pos: pos}

		lex, err := p.peek()
		if err != nil {
			return nil, err
		}
		if lex.Kind == lexer.KindSymbol && lex.Symbol == lexer.SymbolColon {
			p.next()
			typ, err := p.parseType()
			if err != nil {
				return nil, err
			}
			ident.Type = typ
		}
		idents = append(idents, ident)

		lex, err = p.peek()
		if err != nil {
			return nil, err
		}
		if lex.Kind == lexer.KindSymbol && lex.Symbol == lexer.SymbolComma {
			p.next()
			continue
		}
		break
	}
	return idents, nil
}

func (p *Parser) parseType() (Type, error) {
	lex, err := p.next()
	if err != nil {
		return Type{}, err
	}
	switch {
	case lex.Kind == lexer.KindKeyword && lex.Keyword == lexer.KeywordBool:
		return Type{Kind: TypeBool}, nil
	case lex.Kind == lexer.KindKeyword && lex.Keyword == lexer.KeywordUInt:
		return Type{Kind: TypeUInt, Bits: lex.Bits}, nil
	case lex.Kind == lexer.KindKeyword && lex.Keyword == lexer.KeywordInt:
		return Type{Kind: TypeInt, Bits: lex.Bits}, nil
	case lex.Kind == lexer.KindIdentifier:
		return Type{Kind: TypeCustom, Name: lex.Identifier}, nil
	default:
		return Type{}, expectedOneOf(lex, "expected a type", "bool", "uintN", "intN", "identifier")
	}
}

func (p *Parser) parseFunctionDefinition() (FunctionDefinition, error) {
	start, err := p.expectKeyword(lexer.KeywordFunction, "expected `function`")
	if err != nil {
		return FunctionDefinition{}, err
	}
	name, _, err := p.expectIdentifier("expected a function name")
	if err != nil {
		return FunctionDefinition{}, err
	}
	if _, err := p.expectSymbol(lexer.SymbolParenLeft, "expected `(` to open the parameter list"); err != nil {
		return FunctionDefinition{}, err
	}
	def := FunctionDefinition{Name: name, Pos: start.Pos}

	lex, err := p.peek()
	if err != nil {
		return FunctionDefinition{}, err
	}
	if !(lex.Kind == lexer.KindSymbol && lex.Symbol == lexer.SymbolParenRight) {
		params, err := p.parseTypedIdentifierList()
		if err != nil {
			return FunctionDefinition{}, err
		}
		def.Parameters = params
	}
	if _, err := p.expectSymbol(lexer.SymbolParenRight, "expected `)` to close the parameter list"); err != nil {
		return FunctionDefinition{}, err
	}

	lex, err = p.peek()
	if err != nil {
		return FunctionDefinition{}, err
	}
	if lex.Kind == lexer.KindSymbol && lex.Symbol == lexer.SymbolArrow {
		p.next()
		rets, err := p.parseTypedIdentifierList()
		if err != nil {
			return FunctionDefinition{}, err
		}
		def.Returns = rets
	}

	body, err := p.parseBlock()
	if err != nil {
		return FunctionDefinition{}, err
	}
	def.Body = body
	return def, nil
}

func (p *Parser) parseIfConditional() (IfConditional, error) {
	start, err := p.expectKeyword(lexer.KeywordIf, "expected `if`")
	if err != nil {
		return IfConditional{}, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return IfConditional{}, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return IfConditional{}, err
	}
	return IfConditional{Condition: cond, Body: body, Pos: start.Pos}, nil
}

// parseSwitch parses `switch expr (case lit {..})* (default {..})?`,
// requiring at least one case or default (spec.md §4.B edge case).
func (p *Parser) parseSwitch() (Switch, error) {
	start, err := p.expectKeyword(lexer.KeywordSwitch, "expected `switch`")
	if err != nil {
		return Switch{}, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return Switch{}, err
	}
	sw := Switch{Expression: expr, Pos: start.Pos}

	for {
		lex, err := p.peek()
		if err != nil {
			return Switch{}, err
		}
		if lex.Kind == lexer.KindKeyword && lex.Keyword == lexer.KeywordCase {
			p.next()
			lit, err := p.parseLiteral()
			if err != nil {
				return Switch{}, err
			}
			body, err := p.parseBlock()
			if err != nil {
				return Switch{}, err
			}
			sw.Cases = append(sw.Cases, SwitchCase{Literal: lit, Body: body, Pos: lex.Pos})
			continue
		}
		break
	}

	lex, err := p.peek()
	if err != nil {
		return Switch{}, err
	}
	if lex.Kind == lexer.KindKeyword && lex.Keyword == lexer.KeywordDefault {
		p.next()
		body, err := p.parseBlock()
		if err != nil {
			return Switch{}, err
		}
		sw.Default = &body
	}

	if len(sw.Cases) == 0 && sw.Default == nil {
		found, _ := p.peek()
		return Switch{}, expectedOneOf(found, "a switch needs at least one case or a default", "case", "default")
	}
	return sw, nil
}

// parseForLoop parses `for { init } cond { post } { body }`; the
// initializer's scope encloses the whole loop (spec.md §4.B).
func (p *Parser) parseForLoop() (ForLoop, error) {
	start, err := p.expectKeyword(lexer.KeywordFor, "expected `for`")
	if err != nil {
		return ForLoop{}, err
	}
	init, err := p.parseBlock()
	if err != nil {
		return ForLoop{}, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return ForLoop{}, err
	}
	post, err := p.parseBlock()
	if err != nil {
		return ForLoop{}, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return ForLoop{}, err
	}
	return ForLoop{Init: init, Condition: cond, Post: post, Body: body, Pos: start.Pos}, nil
}

func (p *Parser) parseExpression() (Expression, error) {
	lex, err := p.peek()
	if err != nil {
		return Expression{}, err
	}
	switch {
	case lex.Kind == lexer.KindIdentifier:
		p.next()
		next, err := p.peek()
		if err != nil {
			return Expression{}, err
		}
		if next.Kind == lexer.KindSymbol && next.Symbol == lexer.SymbolParenLeft {
			call, err := p.parseFunctionCallArguments(lex.Identifier, lex.Pos)
			if err != nil {
				return Expression{}, err
			}
			if msg, ok := checkBuiltinWarning(call.Name); ok {
				p.Warnings = append(p.Warnings, Warning{Message: msg, Pos: lex.Pos})
			}
			return Expression{Kind: ExpressionFunctionCall, FunctionCall: &call, Pos: lex.Pos}, nil
		}
		return Expression{Kind: ExpressionIdentifier, Identifier: lex.Identifier, Pos: lex.Pos}, nil
	case lex.Kind == lexer.KindLiteral:
		lit, err := p.parseLiteral()
		if err != nil {
			return Expression{}, err
		}
		return Expression{Kind: ExpressionLiteral, Literal: &lit, Pos: lex.Pos}, nil
	default:
		return Expression{}, expectedOneOf(lex, "expected an expression", "identifier", "function call", "literal")
	}
}

// parseFunctionCallArguments parses the `(arg, arg, ...)` suffix of a
// function call whose name has already been consumed.
func (p *Parser) parseFunctionCallArguments(name string, pos Position) (FunctionCall, error) {
	if _, err := p.expectSymbol(lexer.SymbolParenLeft, "expected `(`"); err != nil {
		return FunctionCall{}, err
	}
	call := FunctionCall{Name: name, Pos: pos}

	lex, err := p.peek()
	if err != nil {
		return FunctionCall{}, err
	}
	if !(lex.Kind == lexer.KindSymbol && lex.Symbol == lexer.SymbolParenRight) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return FunctionCall{}, err
			}
			call.Arguments = append(call.Arguments, arg)

			lex, err = p.peek()
			if err != nil {
				return FunctionCall{}, err
			}
			if lex.Kind == lexer.KindSymbol && lex.Symbol == lexer.SymbolComma {
				p.next()
				continue
			}
			break
		}
	}
	if _, err := p.expectSymbol(lexer.SymbolParenRight, "expected `)` to close the argument list"); err != nil {
		return FunctionCall{}, err
	}
	return call, nil
}

func (p *Parser) parseLiteral() (Literal, error) {
	lex, err := p.next()
	if err != nil {
		return Literal{}, err
	}
	if lex.Kind != lexer.KindLiteral {
		return Literal{}, expectedOneOf(lex, "expected a literal", "integer", "string", "boolean")
	}
	lit := Literal{
		Kind:        lex.Literal.Kind,
		Value:       lex.Literal.Value,
		IsHex:       lex.Literal.IsHex,
		IsHexString: lex.Literal.IsHexString,
		Type:        DefaultType(),
		Pos:         lex.Pos,
	}
	if lit.Kind == LiteralBoolean {
		lit.Type = Type{Kind: TypeBool}
	}

	peeked, err := p.peek()
	if err != nil {
		return Literal{}, err
	}
	if peeked.Kind == lexer.KindSymbol && peeked.Symbol == lexer.SymbolColon {
		p.next()
		typ, err := p.parseType()
		if err != nil {
			return Literal{}, err
		}
		lit.Type = typ
	}
	return lit, nil
}

// IntegerValue returns a literal's raw digit text and whether it is
// hex-encoded, for materializing as a field-width constant (the Yul
// writer parses literal digits with math/big).
func (l Literal) IntegerValue() (value string, isHex bool, err error) {
	if l.Kind != LiteralInteger {
		return "", false, ErrNotIntegerLiteral
	}
	return l.Value, l.IsHex, nil
}
