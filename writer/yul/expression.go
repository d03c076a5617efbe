package yul

import (
	"fmt"
	"math/big"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/value"

	"github.com/luxfi/yulc/llvmctx"
	"github.com/luxfi/yulc/parser"
)

// emitExpression evaluates expr and requires it to yield exactly one
// word, the common case for conditions, switch selectors, and
// single-valued function arguments.
func (w *Writer) emitExpression(expr *parser.Expression) (value.Value, error) {
	values, err := w.emitExpressionMulti(expr)
	if err != nil {
		return nil, err
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("yul writer: expression yields %d values, expected 1", len(values))
	}
	return values[0], nil
}

// emitExpressionMulti evaluates expr, returning every value it
// produces: identifiers and literals always yield exactly one, but a
// function call may yield zero, one, or many (spec.md §3).
func (w *Writer) emitExpressionMulti(expr *parser.Expression) ([]value.Value, error) {
	switch expr.Kind {
	case parser.ExpressionIdentifier:
		ptr, ok := w.lookup(expr.Identifier)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUndeclaredIdentifier, expr.Identifier)
		}
		return []value.Value{w.ctx.Block().NewLoad(llvmctx.FieldType(), ptr)}, nil
	case parser.ExpressionLiteral:
		v, err := w.emitLiteral(expr.Literal)
		if err != nil {
			return nil, err
		}
		return []value.Value{v}, nil
	case parser.ExpressionFunctionCall:
		return w.emitCall(expr.FunctionCall)
	default:
		return nil, fmt.Errorf("yul writer: unhandled expression kind %d", expr.Kind)
	}
}

func (w *Writer) emitLiteral(lit *parser.Literal) (value.Value, error) {
	switch lit.Kind {
	case parser.LiteralBoolean:
		if lit.Value == "true" {
			return constant.NewInt(llvmctx.FieldType(), 1), nil
		}
		return constant.NewInt(llvmctx.FieldType(), 0), nil

	case parser.LiteralInteger:
		digits, isHex, err := lit.IntegerValue()
		if err != nil {
			return nil, err
		}
		base := 10
		if isHex {
			base = 16
		}
		n, ok := new(big.Int).SetString(digits, base)
		if !ok {
			return nil, fmt.Errorf("yul writer: malformed integer literal %q", lit.Value)
		}
		return constant.NewIntFromString(llvmctx.FieldType(), n.String())

	case parser.LiteralString:
		return stringLiteralWord(lit.Value)

	default:
		return nil, fmt.Errorf("yul writer: unhandled literal kind %d", lit.Kind)
	}
}

// addressConstant left-pads raw (an address or content-hash byte
// string) into a full word, matching how the EVM represents any value
// narrower than 32 bytes on its stack.
func addressConstant(raw []byte) value.Value {
	padded := make([]byte, 32)
	copy(padded[32-len(raw):], raw)
	n := new(big.Int).SetBytes(padded)
	v, err := constant.NewIntFromString(llvmctx.FieldType(), n.String())
	if err != nil {
		panic(err)
	}
	return v
}

// stringLiteralWord packs a Yul string literal into a single word the
// way solc does: the bytes occupy the high-order end, left-aligned,
// zero-padded on the right (spec.md §3 default UInt(256) literal
// representation).
func stringLiteralWord(s string) (value.Value, error) {
	raw := []byte(s)
	if len(raw) > 32 {
		return nil, fmt.Errorf("yul writer: string literal %q exceeds 32 bytes", s)
	}
	padded := make([]byte, 32)
	copy(padded, raw)
	n := new(big.Int).SetBytes(padded)
	return constant.NewIntFromString(llvmctx.FieldType(), n.String())
}
