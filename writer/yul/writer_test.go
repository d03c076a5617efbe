package yul_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	core "github.com/luxfi/yulc/etherealir"
	"github.com/luxfi/yulc/llvmctx"
	"github.com/luxfi/yulc/parser"
	"github.com/luxfi/yulc/writer/yul"
)

func newContext() *llvmctx.Context {
	deps := llvmctx.NewDependencyRegistry(nil)
	return llvmctx.New("test", core.CodeTypeRuntime, deps, llvmctx.LibraryMap{})
}

func ident(name string) parser.Identifier { return parser.Identifier{Name: name, Type: parser.DefaultType()} }

func intLiteral(v string) *parser.Literal {
	return &parser.Literal{Kind: parser.LiteralInteger, Value: v, Type: parser.DefaultType()}
}

func litExpr(v string) parser.Expression {
	return parser.Expression{Kind: parser.ExpressionLiteral, Literal: intLiteral(v)}
}

func idExpr(name string) parser.Expression {
	return parser.Expression{Kind: parser.ExpressionIdentifier, Identifier: name}
}

func callExpr(name string, args ...parser.Expression) parser.Expression {
	return parser.Expression{Kind: parser.ExpressionFunctionCall, FunctionCall: &parser.FunctionCall{Name: name, Arguments: args}}
}

func exprStatement(e parser.Expression) parser.Statement {
	return parser.Statement{Kind: parser.StatementExpression, Expression: &e}
}

func TestWriteObjectEmptyBody(t *testing.T) {
	obj := &parser.Object{Name: "Empty", Code: parser.Code{Block: parser.Block{}}}
	ctx := newContext()
	w := yul.New(ctx)
	require.NoError(t, w.WriteObject(obj))
	require.Contains(t, ctx.Functions, "Empty")
}

func TestWriteObjectVariableDeclarationAndBuiltin(t *testing.T) {
	decl := parser.Statement{
		Kind: parser.StatementVariableDeclaration,
		VariableDeclaration: &parser.VariableDeclaration{
			Names: []parser.Identifier{ident("x")},
			Value: func() *parser.Expression { e := callExpr("add", litExpr("1"), litExpr("2")); return &e }(),
		},
	}
	store := exprStatement(callExpr("mstore", litExpr("0"), idExpr("x")))

	obj := &parser.Object{
		Name: "Store",
		Code: parser.Code{Block: parser.Block{Statements: []parser.Statement{decl, store}}},
	}

	ctx := newContext()
	w := yul.New(ctx)
	require.NoError(t, w.WriteObject(obj))
	require.Contains(t, ctx.Functions, "Store")
}

func TestWriteObjectNestedRuntime(t *testing.T) {
	runtime := parser.Object{Name: "Token_deployed", Code: parser.Code{Block: parser.Block{}}}
	obj := &parser.Object{Name: "Token", Code: parser.Code{Block: parser.Block{}}, Nested: []parser.Object{runtime}}

	ctx := newContext()
	w := yul.New(ctx)
	require.NoError(t, w.WriteObject(obj))
	require.Contains(t, ctx.Functions, "Token")
	require.Contains(t, ctx.Functions, "Token_deployed")
}

func TestWriteObjectUserFunctionSingleReturn(t *testing.T) {
	fn := parser.Statement{
		Kind: parser.StatementFunctionDefinition,
		FunctionDefinition: &parser.FunctionDefinition{
			Name:       "double",
			Parameters: []parser.Identifier{ident("a")},
			Returns:    []parser.Identifier{ident("r")},
			Body: parser.Block{Statements: []parser.Statement{
				{
					Kind: parser.StatementAssignment,
					Assignment: &parser.Assignment{
						Names: []string{"r"},
						Value: callExpr("add", idExpr("a"), idExpr("a")),
					},
				},
			}},
		},
	}
	call := exprStatement(callExpr("double", litExpr("21")))

	obj := &parser.Object{
		Name: "Doubler",
		Code: parser.Code{Block: parser.Block{Statements: []parser.Statement{fn, call}}},
	}

	ctx := newContext()
	w := yul.New(ctx)
	require.NoError(t, w.WriteObject(obj))
	require.Contains(t, ctx.Functions, "double")
	double := ctx.Functions["double"]
	require.Empty(t, double.OutParams)
}

func TestWriteObjectUserFunctionMultiReturn(t *testing.T) {
	fn := parser.Statement{
		Kind: parser.StatementFunctionDefinition,
		FunctionDefinition: &parser.FunctionDefinition{
			Name:       "split",
			Parameters: []parser.Identifier{ident("a")},
			Returns:    []parser.Identifier{ident("hi"), ident("lo")},
			Body:       parser.Block{},
		},
	}
	decl := parser.Statement{
		Kind: parser.StatementVariableDeclaration,
		VariableDeclaration: &parser.VariableDeclaration{
			Names: []parser.Identifier{ident("a"), ident("b")},
			Value: func() *parser.Expression { e := callExpr("split", litExpr("1")); return &e }(),
		},
	}

	obj := &parser.Object{
		Name: "Splitter",
		Code: parser.Code{Block: parser.Block{Statements: []parser.Statement{fn, decl}}},
	}

	ctx := newContext()
	w := yul.New(ctx)
	require.NoError(t, w.WriteObject(obj))
	split := ctx.Functions["split"]
	require.Len(t, split.OutParams, 1)
}

func TestWriteObjectIfAndForLoop(t *testing.T) {
	ifStmt := parser.Statement{
		Kind: parser.StatementIf,
		If: &parser.IfConditional{
			Condition: callExpr("iszero", litExpr("0")),
			Body:      parser.Block{Statements: []parser.Statement{exprStatement(callExpr("pop", litExpr("1")))}},
		},
	}
	forStmt := parser.Statement{
		Kind: parser.StatementForLoop,
		ForLoop: &parser.ForLoop{
			Init: parser.Block{Statements: []parser.Statement{
				{
					Kind: parser.StatementVariableDeclaration,
					VariableDeclaration: &parser.VariableDeclaration{
						Names: []parser.Identifier{ident("i")},
						Value: func() *parser.Expression { e := litExpr("0"); return &e }(),
					},
				},
			}},
			Condition: callExpr("lt", idExpr("i"), litExpr("10")),
			Post: parser.Block{Statements: []parser.Statement{
				{
					Kind: parser.StatementAssignment,
					Assignment: &parser.Assignment{Names: []string{"i"}, Value: callExpr("add", idExpr("i"), litExpr("1"))},
				},
			}},
			Body: parser.Block{Statements: []parser.Statement{exprStatement(callExpr("pop", idExpr("i")))}},
		},
	}

	obj := &parser.Object{
		Name: "Looper",
		Code: parser.Code{Block: parser.Block{Statements: []parser.Statement{ifStmt, forStmt}}},
	}

	ctx := newContext()
	w := yul.New(ctx)
	require.NoError(t, w.WriteObject(obj))
}

func TestWriteObjectUnknownFunctionErrors(t *testing.T) {
	obj := &parser.Object{
		Name: "Bad",
		Code: parser.Code{Block: parser.Block{Statements: []parser.Statement{exprStatement(callExpr("notafunction"))}}},
	}

	ctx := newContext()
	w := yul.New(ctx)
	require.Error(t, w.WriteObject(obj))
}
