// Package llvmctx is the LLVM emission context of spec.md §4.E: it
// wraps an LLVM module and builder and exposes the function registry,
// virtual EVM stack, address spaces, intrinsic table, immutables and
// loop stack that the writer packages drive during code generation.
// Grounded on original_source/src/generator/llvm/* (the Context type
// referenced throughout evm/assembly/instruction/*.rs and
// ethereal_ir/*.rs) and built on github.com/llir/llvm, the pure-Go
// LLVM IR text builder (out-of-pack, see SPEC_FULL.md's DOMAIN STACK).
package llvmctx

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/luxfi/yulc/etherealir"
)

// FieldBits is the bit width of the EVM's native word, used for every
// virtual-stack slot and literal constant.
const FieldBits = 256

// FieldType is the LLVM integer type backing the EVM word.
func FieldType() *types.IntType {
	return types.NewInt(FieldBits)
}

// Context is the per-object LLVM emission context. One Context is
// created per Yul object compile; it is not shared across objects or
// goroutines (spec.md §5: "the LLVM module and builder are not
// concurrent").
type Context struct {
	Module   *ir.Module
	CodeType etherealir.CodeType

	Functions map[string]*FunctionFrame
	Current   *FunctionFrame

	Loops LoopStack

	intrinsics   map[IntrinsicFunction]*ir.Func
	intrinsicLRU *lru.Cache

	Dependencies *DependencyRegistry
	Libraries    LibraryMap
}

// New constructs an emission context over a fresh LLVM module.
func New(moduleName string, codeType etherealir.CodeType, deps *DependencyRegistry, libs LibraryMap) *Context {
	cache, _ := lru.New(64)
	return &Context{
		Module:       ir.NewModule(),
		CodeType:     codeType,
		Functions:    make(map[string]*FunctionFrame),
		intrinsics:   make(map[IntrinsicFunction]*ir.Func),
		intrinsicLRU: cache,
		Dependencies: deps,
		Libraries:    libs,
	}
}

// DeclareFunction registers a new function frame under name, creating
// its entry and return blocks (spec.md §4.E "Function registry").
func (c *Context) DeclareFunction(name string, paramCount, returnCount int) *FunctionFrame {
	params := make([]*ir.Param, paramCount)
	for i := range params {
		params[i] = ir.NewParam("", FieldType())
	}

	// A function with more than one return variable returns its first
	// value normally and writes the rest through hidden pointer
	// out-params appended after the declared parameters.
	outCount := 0
	if returnCount > 1 {
		outCount = returnCount - 1
	}
	pointerType := types.NewPointer(FieldType())
	for i := 0; i < outCount; i++ {
		params = append(params, ir.NewParam("", pointerType))
	}

	retType := types.Type(VoidType())
	if returnCount >= 1 {
		retType = FieldType()
	}
	fn := c.Module.NewFunc(name, retType, params...)
	frame := &FunctionFrame{
		Value:       fn,
		EntryBlock:  fn.NewBlock(name + ".entry"),
		ReturnBlock: fn.NewBlock(name + ".return"),
		OutParams:   fn.Params[paramCount:],
		LocalStack:  make(map[string]value.Value),
	}
	if returnCount > 1 {
		frame.ReturnDescriptor = ReturnDescriptor{Kind: ReturnCompound, Size: returnCount}
	} else if returnCount == 1 {
		frame.ReturnDescriptor = ReturnDescriptor{Kind: ReturnPrimitive}
	}
	c.Functions[name] = frame
	c.Current = frame
	return frame
}

// SetBlock moves the emission cursor to block, mirroring the
// teacher-agnostic "current-bb cursor" of spec.md §4.E.
func (c *Context) SetBlock(block *ir.Block) {
	c.Current.cursor = block
}

// Block returns the block currently receiving emitted instructions.
func (c *Context) Block() *ir.Block {
	return c.Current.cursor
}
