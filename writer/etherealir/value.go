package etherealir

import (
	"math/big"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/value"

	"github.com/luxfi/yulc/llvmctx"
)

// immediateConstant parses a PUSH instruction's hex/decimal immediate
// into a field-width constant (spec.md §4.C: legacy assembly encodes
// every literal as a hex string, with or without a "0x" prefix).
func immediateConstant(raw string) value.Value {
	text := raw
	base := 16
	if len(text) > 1 && text[0:2] == "0x" {
		text = text[2:]
	}
	n := new(big.Int)
	if _, ok := n.SetString(text, base); !ok {
		n.SetInt64(0)
	}
	v, err := constant.NewIntFromString(llvmctx.FieldType(), n.String())
	if err != nil {
		panic(err)
	}
	return v
}

// tagConstant stands in for a PUSH [tag] N whose actual jump target
// was already resolved into a structural Exit/Successor edge by
// Build/Finalize; by the time the writer runs, the pushed value is
// never consulted at runtime, so a stable placeholder carrying the
// tag number is enough to keep virtual-stack bookkeeping balanced.
func tagConstant(tag int) value.Value {
	return constant.NewInt(llvmctx.FieldType(), int64(tag))
}

// truthy converts a field-width word to an i1 by comparing against
// zero, the way every EVM conditional jump does.
func truthy(ctx *llvmctx.Context, v value.Value) value.Value {
	zero := constant.NewInt(llvmctx.FieldType(), 0)
	return ctx.Block().NewICmp(enum.IPredNE, v, zero)
}
