package compiler

import "github.com/luxfi/yulc/parser"

// scanWarnings walks obj's Code (and every nested object) looking for
// the two built-ins spec.md §8 scenario 4 and §7 single out by name:
// ecrecover and extcodesize usage. Warnings are collected during AST
// traversal and returned in source order, matching §7's "collected
// during AST traversal" propagation policy.
func scanWarnings(obj *parser.Object, file string) []warningHit {
	var hits []warningHit
	walkBlock(obj.Code.Block, &hits)
	for _, nested := range obj.Nested {
		hits = append(hits, scanWarnings(&nested, file)...)
	}
	return hits
}

type warningHit struct {
	Name string
}

func walkBlock(b parser.Block, hits *[]warningHit) {
	for _, stmt := range b.Statements {
		walkStatement(stmt, hits)
	}
}

func walkStatement(s parser.Statement, hits *[]warningHit) {
	switch s.Kind {
	case parser.StatementBlock:
		walkBlock(*s.Block, hits)
	case parser.StatementFunctionDefinition:
		walkBlock(s.FunctionDefinition.Body, hits)
	case parser.StatementVariableDeclaration:
		if s.VariableDeclaration.Value != nil {
			walkExpression(*s.VariableDeclaration.Value, hits)
		}
	case parser.StatementAssignment:
		walkExpression(s.Assignment.Value, hits)
	case parser.StatementIf:
		walkExpression(s.If.Condition, hits)
		walkBlock(s.If.Body, hits)
	case parser.StatementSwitch:
		walkExpression(s.Switch.Expression, hits)
		for _, c := range s.Switch.Cases {
			walkBlock(c.Body, hits)
		}
		if s.Switch.Default != nil {
			walkBlock(*s.Switch.Default, hits)
		}
	case parser.StatementForLoop:
		walkBlock(s.ForLoop.Init, hits)
		walkExpression(s.ForLoop.Condition, hits)
		walkBlock(s.ForLoop.Post, hits)
		walkBlock(s.ForLoop.Body, hits)
	case parser.StatementExpression:
		walkExpression(*s.Expression, hits)
	}
}

func walkExpression(e parser.Expression, hits *[]warningHit) {
	if e.Kind != parser.ExpressionFunctionCall {
		return
	}
	call := e.FunctionCall
	switch call.Name {
	case "ecrecover", "extcodesize":
		*hits = append(*hits, warningHit{Name: call.Name})
	}
	for _, arg := range call.Arguments {
		walkExpression(arg, hits)
	}
}
