package etherealir

import (
	"fmt"
	"strings"

	"github.com/luxfi/yulc/evmasm"
)

// EtherealIR is the reconstructed representation of one object's
// bytecode: its all-inlined Function plus which half of the contract
// (deploy or runtime) it belongs to (spec.md §3).
type EtherealIR struct {
	Function *Function
	CodeType CodeType
}

// TryFromInstructions assembles an EtherealIR from a flat instruction
// vector, grounded on original_source/src/evm/ethereal_ir/mod.rs's
// try_from_instructions (spec.md §4.D).
func TryFromInstructions(instrs []evmasm.Instruction, codeType CodeType, cloneLimit int) (*EtherealIR, error) {
	fn, err := Build(instrs, codeType, cloneLimit)
	if err != nil {
		return nil, err
	}
	fn.Finalize()
	return &EtherealIR{Function: fn, CodeType: codeType}, nil
}

func (ir *EtherealIR) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "function (%s)\n", ir.CodeType)
	for _, key := range ir.Function.Order {
		block := ir.Function.Blocks[key]
		fmt.Fprintf(&b, "%s: entry=%s exit=%s successors=%v\n", block.Name, block.EntryStack, block.Exit.Kind, block.Successors)
	}
	return b.String()
}
