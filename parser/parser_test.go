package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/yulc/parser"
)

func TestParseMinimalObject(t *testing.T) {
	obj, err := parser.New(`object "Test" { code { } }`).ParseObject()
	require.NoError(t, err)
	require.Equal(t, "Test", obj.Name)
	require.Empty(t, obj.Code.Block.Statements)
	require.Empty(t, obj.Nested)
}

func TestParseNestedDeployedObject(t *testing.T) {
	src := `object "Test" {
		code { }
		object "Test_deployed" {
			code { }
		}
	}`
	obj, err := parser.New(src).ParseObject()
	require.NoError(t, err)
	require.Len(t, obj.Nested, 1)
	require.Equal(t, "Test_deployed", obj.Nested[0].Name)
}

func TestParseFunctionDefinitionAndCall(t *testing.T) {
	src := `object "Test" {
		code {
			function add(a, b) -> c {
				c := add(a, b)
			}
		}
	}`
	obj, err := parser.New(src).ParseObject()
	require.NoError(t, err)
	stmts := obj.Code.Block.Statements
	require.Len(t, stmts, 1)
	require.Equal(t, parser.StatementFunctionDefinition, stmts[0].Kind)

	fn := stmts[0].FunctionDefinition
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Parameters, 2)
	require.Len(t, fn.Returns, 1)
	require.Equal(t, "c", fn.Returns[0].Name)

	body := fn.Body.Statements
	require.Len(t, body, 1)
	require.Equal(t, parser.StatementAssignment, body[0].Kind)
	assign := body[0].Assignment
	require.Equal(t, []string{"c"}, assign.Names)
	require.Equal(t, parser.ExpressionFunctionCall, assign.Value.Kind)
	require.Equal(t, "add", assign.Value.FunctionCall.Name)
}

func TestParseMultiAssignment(t *testing.T) {
	src := `object "Test" {
		code {
			let x, y := f()
			x, y := g(x, y)
		}
	}`
	obj, err := parser.New(src).ParseObject()
	require.NoError(t, err)
	stmts := obj.Code.Block.Statements
	require.Len(t, stmts, 2)

	require.Equal(t, parser.StatementVariableDeclaration, stmts[0].Kind)
	decl := stmts[0].VariableDeclaration
	require.Len(t, decl.Names, 2)
	require.Equal(t, "x", decl.Names[0].Name)
	require.Equal(t, "y", decl.Names[1].Name)

	require.Equal(t, parser.StatementAssignment, stmts[1].Kind)
	assign := stmts[1].Assignment
	require.Equal(t, []string{"x", "y"}, assign.Names)
}

func TestParseIfSwitchForLoop(t *testing.T) {
	src := `object "Test" {
		code {
			if lt(x, 10) {
				x := add(x, 1)
			}
			switch x
			case 0 { y := 1 }
			default { y := 2 }
			for { let i := 0 } lt(i, 10) { i := add(i, 1) } {
				x := add(x, i)
			}
		}
	}`
	obj, err := parser.New(src).ParseObject()
	require.NoError(t, err)
	stmts := obj.Code.Block.Statements
	require.Len(t, stmts, 3)
	require.Equal(t, parser.StatementIf, stmts[0].Kind)
	require.Equal(t, parser.StatementSwitch, stmts[1].Kind)
	require.NotNil(t, stmts[1].Switch.Default)
	require.Len(t, stmts[1].Switch.Cases, 1)
	require.Equal(t, parser.StatementForLoop, stmts[2].Kind)
}

func TestParseSwitchRequiresCaseOrDefault(t *testing.T) {
	src := `object "Test" { code { switch x } }`
	_, err := parser.New(src).ParseObject()
	require.Error(t, err)
}

func TestParseBreakContinueLeave(t *testing.T) {
	src := `object "Test" {
		code {
			for { } 1 { } {
				if 1 { break }
				if 1 { continue }
				leave
			}
		}
	}`
	obj, err := parser.New(src).ParseObject()
	require.NoError(t, err)
	loop := obj.Code.Block.Statements[0].ForLoop
	require.Equal(t, parser.StatementIf, loop.Body.Statements[0].Kind)
	require.Equal(t, parser.StatementBreak, loop.Body.Statements[0].If.Body.Statements[0].Kind)
	require.Equal(t, parser.StatementContinue, loop.Body.Statements[1].If.Body.Statements[0].Kind)
	require.Equal(t, parser.StatementLeave, loop.Body.Statements[2].Kind)
}

func TestParseTypedIdentifiersAndLiterals(t *testing.T) {
	src := `object "Test" {
		code {
			function f(a: uint256, b: bool) -> c: uint256 {
				let d: int8 := 1
				c := a
			}
		}
	}`
	obj, err := parser.New(src).ParseObject()
	require.NoError(t, err)
	fn := obj.Code.Block.Statements[0].FunctionDefinition
	require.Equal(t, parser.TypeUInt, fn.Parameters[0].Type.Kind)
	require.Equal(t, 256, fn.Parameters[0].Type.Bits)
	require.Equal(t, parser.TypeBool, fn.Parameters[1].Type.Kind)
	require.Equal(t, parser.TypeUInt, fn.Returns[0].Type.Kind)

	decl := fn.Body.Statements[0].VariableDeclaration
	require.Equal(t, parser.TypeInt, decl.Names[0].Type.Kind)
	require.Equal(t, 8, decl.Names[0].Type.Bits)
}

func TestParseHexAndStringLiterals(t *testing.T) {
	src := `object "Test" {
		code {
			let a := 0x2a
			let b := "hello"
			let c := hex"deadbeef"
			let d := true
		}
	}`
	obj, err := parser.New(src).ParseObject()
	require.NoError(t, err)
	stmts := obj.Code.Block.Statements

	a := stmts[0].VariableDeclaration.Value.Literal
	require.True(t, a.IsHex)
	require.Equal(t, parser.LiteralInteger, a.Kind)

	b := stmts[1].VariableDeclaration.Value.Literal
	require.Equal(t, parser.LiteralString, b.Kind)
	require.Equal(t, "hello", b.Value)

	c := stmts[2].VariableDeclaration.Value.Literal
	require.True(t, c.IsHexString)

	d := stmts[3].VariableDeclaration.Value.Literal
	require.Equal(t, parser.LiteralBoolean, d.Kind)
	require.Equal(t, parser.TypeBool, d.Type.Kind)
}

func TestParseErrorIncludesExpectedList(t *testing.T) {
	_, err := parser.New(`object "Test" { code { let := 1 } }`).ParseObject()
	require.Error(t, err)
	var perr *parser.Error
	require.ErrorAs(t, err, &perr)
	require.Contains(t, perr.Expected, "identifier")
}

func TestParseEcrecoverWarning(t *testing.T) {
	src := `object "Test" {
		code {
			let r := ecrecover(h, v, r, s)
		}
	}`
	p := parser.New(src)
	_, err := p.ParseObject()
	require.NoError(t, err)
	require.Len(t, p.Warnings, 1)
	require.Contains(t, p.Warnings[0].Message, "ecrecover")
}
