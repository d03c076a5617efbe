// Package yul is the Yul AST writer of spec.md §4.F: a recursive
// descent over parser.Object/Block/Statement/Expression that drives an
// llvmctx.Context to build the corresponding LLVM function(s).
// Grounded on original_source/src/generator/mod.rs's object/code
// lowering and spec.md §4.F's builtin dispatch table.
package yul

import (
	"fmt"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/value"

	"github.com/luxfi/yulc/llvmctx"
	"github.com/luxfi/yulc/parser"
)

// Writer walks a Yul AST and emits it into an llvmctx.Context. One
// Writer lowers a top-level Object and, through WriteObject's
// recursion, every object nested under it into the same Context.
type Writer struct {
	ctx          *llvmctx.Context
	scopes       []map[string]value.Value
	blockCounter int
}

// New constructs a Writer over ctx.
func New(ctx *llvmctx.Context) *Writer {
	return &Writer{ctx: ctx}
}

func (w *Writer) pushScope() {
	w.scopes = append(w.scopes, make(map[string]value.Value))
}

func (w *Writer) popScope() {
	w.scopes = w.scopes[:len(w.scopes)-1]
}

func (w *Writer) declare(name string, pointer value.Value) {
	w.scopes[len(w.scopes)-1][name] = pointer
	if w.ctx.Current != nil {
		w.ctx.Current.LocalStack[name] = pointer
	}
}

func (w *Writer) lookup(name string) (value.Value, bool) {
	for i := len(w.scopes) - 1; i >= 0; i-- {
		if p, ok := w.scopes[i][name]; ok {
			return p, true
		}
	}
	return nil, false
}

// objectEntryName derives the LLVM function name for an object's
// top-level code block: the object's own name (deploy code) or the
// object's name for its nested runtime object, e.g. "Token" /
// "Token_deployed".
func objectEntryName(name string) string {
	return name
}

// WriteObject lowers one Object — its code block plus any nested
// (deployed) objects — into the Context's module (spec.md §4.B, §4.F).
func (w *Writer) WriteObject(obj *parser.Object) error {
	for _, dep := range obj.Dependencies {
		_ = dep // dependencies are resolved lazily via ctx.Dependencies when referenced
	}

	frame := w.ctx.DeclareFunction(objectEntryName(obj.Name), 0, 0)
	w.ctx.SetBlock(frame.EntryBlock)
	w.pushScope()
	if err := w.writeBlock(&obj.Code.Block); err != nil {
		w.popScope()
		return err
	}
	w.popScope()
	if w.ctx.Block().Term == nil {
		w.ctx.Block().NewRet(nil)
	}

	for i := range obj.Nested {
		if err := w.WriteObject(&obj.Nested[i]); err != nil {
			return err
		}
	}
	return nil
}

// writeBlock lowers a Block: function definitions are hoisted (their
// signatures registered) before any statement in the block executes,
// matching Yul's allow-forward-reference scoping rule (spec.md §3
// "Block... introduces a lexical scope for... function definitions").
func (w *Writer) writeBlock(block *parser.Block) error {
	w.pushScope()
	defer w.popScope()

	for i := range block.Statements {
		stmt := &block.Statements[i]
		if stmt.Kind == parser.StatementFunctionDefinition {
			w.hoistFunction(stmt.FunctionDefinition)
		}
	}

	for i := range block.Statements {
		stmt := &block.Statements[i]
		if stmt.Kind == parser.StatementFunctionDefinition {
			if err := w.writeFunctionBody(stmt.FunctionDefinition); err != nil {
				return err
			}
			continue
		}
		if err := w.emitStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) hoistFunction(def *parser.FunctionDefinition) {
	saved := w.ctx.Current
	w.ctx.DeclareFunction(def.Name, len(def.Parameters), len(def.Returns))
	w.ctx.Current = saved
}

func (w *Writer) writeFunctionBody(def *parser.FunctionDefinition) error {
	frame, ok := w.ctx.Functions[def.Name]
	if !ok {
		return fmt.Errorf("yul writer: function %q was not hoisted", def.Name)
	}
	saved := w.ctx.Current
	w.ctx.Current = frame
	w.ctx.SetBlock(frame.EntryBlock)
	w.pushScope()

	for i, p := range def.Parameters {
		alloca := w.ctx.Block().NewAlloca(llvmctx.FieldType())
		w.ctx.Block().NewStore(frame.Value.Params[i], alloca)
		w.declare(p.Name, alloca)
	}

	returnAllocas := make([]value.Value, len(def.Returns))
	for i, r := range def.Returns {
		alloca := w.ctx.Block().NewAlloca(llvmctx.FieldType())
		w.ctx.Block().NewStore(constant.NewInt(llvmctx.FieldType(), 0), alloca)
		w.declare(r.Name, alloca)
		returnAllocas[i] = alloca
	}

	if err := w.writeBlock(&def.Body); err != nil {
		w.popScope()
		w.ctx.Current = saved
		return err
	}
	w.popScope()

	if w.ctx.Block().Term == nil {
		w.ctx.Block().NewBr(frame.ReturnBlock)
	}
	w.ctx.SetBlock(frame.ReturnBlock)
	if err := emitReturn(w.ctx, frame, returnAllocas); err != nil {
		w.ctx.Current = saved
		return err
	}

	w.ctx.Current = saved
	return nil
}

// emitReturn materializes a function's return: the first return
// variable comes back through `ret`, the rest are written through the
// frame's hidden OutParams (spec.md §3 ReturnDescriptor::Compound).
func emitReturn(ctx *llvmctx.Context, frame *llvmctx.FunctionFrame, returnAllocas []value.Value) error {
	block := ctx.Block()
	switch len(returnAllocas) {
	case 0:
		block.NewRet(nil)
	case 1:
		v := block.NewLoad(llvmctx.FieldType(), returnAllocas[0])
		block.NewRet(v)
	default:
		first := block.NewLoad(llvmctx.FieldType(), returnAllocas[0])
		for i, out := range frame.OutParams {
			v := block.NewLoad(llvmctx.FieldType(), returnAllocas[i+1])
			block.NewStore(v, out)
		}
		block.NewRet(first)
	}
	return nil
}
