package llvmctx

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
)

// ReturnKind tags a FunctionFrame's ReturnDescriptor (spec.md §3:
// "None / Primitive(pointer) / Compound(pointer, size)").
type ReturnKind int

const (
	ReturnNone ReturnKind = iota
	ReturnPrimitive
	ReturnCompound
)

// ReturnDescriptor records how a function returns its value(s).
type ReturnDescriptor struct {
	Kind    ReturnKind
	Pointer value.Value
	Size    int // meaningful for ReturnCompound: number of words
}

// FunctionFrame is the per-function emission state of spec.md §3.
type FunctionFrame struct {
	Value            *ir.Func
	EntryBlock       *ir.Block
	ReturnBlock      *ir.Block
	ReturnDescriptor ReturnDescriptor

	// OutParams holds the hidden pointer parameters appended after a
	// function's declared Yul parameters when it has more than one
	// return variable: the first return value comes back through the
	// ordinary LLVM `ret`, the rest are written through these pointers
	// (spec.md §3 ReturnDescriptor::Compound).
	OutParams []*ir.Param

	// LocalStack maps a Yul variable name to the alloca holding its
	// current value.
	LocalStack map[string]value.Value

	// VirtualStack is the EVM-style operand stack Ethereal IR
	// emission reads and writes via stack_pointer(i) (spec.md §4.E).
	VirtualStack []value.Value

	cursor *ir.Block
}
