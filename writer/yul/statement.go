package yul

import (
	"fmt"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/value"

	"github.com/luxfi/yulc/llvmctx"
	"github.com/luxfi/yulc/parser"
)

func (w *Writer) nextBlockName(prefix string) string {
	w.blockCounter++
	return fmt.Sprintf("%s.%d", prefix, w.blockCounter)
}

func (w *Writer) emitStatement(stmt *parser.Statement) error {
	switch stmt.Kind {
	case parser.StatementBlock:
		return w.writeBlock(stmt.Block)
	case parser.StatementFunctionDefinition:
		return nil // hoisted and emitted by writeBlock
	case parser.StatementVariableDeclaration:
		return w.emitVariableDeclaration(stmt.VariableDeclaration)
	case parser.StatementAssignment:
		return w.emitAssignment(stmt.Assignment)
	case parser.StatementIf:
		return w.emitIf(stmt.If)
	case parser.StatementSwitch:
		return w.emitSwitch(stmt.Switch)
	case parser.StatementForLoop:
		return w.emitForLoop(stmt.ForLoop)
	case parser.StatementExpression:
		_, err := w.emitExpressionMulti(stmt.Expression)
		return err
	case parser.StatementContinue:
		loop, ok := w.ctx.Loops.Top()
		if !ok {
			return fmt.Errorf("yul writer: continue outside a for-loop")
		}
		w.ctx.Block().NewBr(loop.ContinueBlock)
		return nil
	case parser.StatementBreak:
		loop, ok := w.ctx.Loops.Top()
		if !ok {
			return fmt.Errorf("yul writer: break outside a for-loop")
		}
		w.ctx.Block().NewBr(loop.BreakBlock)
		return nil
	case parser.StatementLeave:
		w.ctx.Block().NewBr(w.ctx.Current.ReturnBlock)
		return nil
	default:
		return fmt.Errorf("yul writer: unhandled statement kind %d", stmt.Kind)
	}
}

func (w *Writer) emitVariableDeclaration(decl *parser.VariableDeclaration) error {
	var values []value.Value
	if decl.Value != nil {
		var err error
		values, err = w.emitExpressionMulti(decl.Value)
		if err != nil {
			return err
		}
		if len(values) != len(decl.Names) {
			return &ErrArity{Name: "let", Expected: len(decl.Names), Found: len(values)}
		}
	}

	for i, name := range decl.Names {
		alloca := w.ctx.Block().NewAlloca(llvmctx.FieldType())
		var init value.Value = constant.NewInt(llvmctx.FieldType(), 0)
		if values != nil {
			init = values[i]
		}
		w.ctx.Block().NewStore(init, alloca)
		w.declare(name.Name, alloca)
	}
	return nil
}

func (w *Writer) emitAssignment(assign *parser.Assignment) error {
	values, err := w.emitExpressionMulti(&assign.Value)
	if err != nil {
		return err
	}
	if len(values) != len(assign.Names) {
		return &ErrArity{Name: ":=", Expected: len(assign.Names), Found: len(values)}
	}
	for i, name := range assign.Names {
		ptr, ok := w.lookup(name)
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotAssignable, name)
		}
		w.ctx.Block().NewStore(values[i], ptr)
	}
	return nil
}

// truthy converts an EVM-style word to an i1 by comparing against
// zero, the way every Yul conditional does (spec.md §4.F).
func truthy(ctx *llvmctx.Context, v value.Value) value.Value {
	zero := constant.NewInt(llvmctx.FieldType(), 0)
	return ctx.Block().NewICmp(enum.IPredNE, v, zero)
}

func (w *Writer) emitIf(stmt *parser.IfConditional) error {
	cond, err := w.emitExpression(&stmt.Condition)
	if err != nil {
		return err
	}
	fn := w.ctx.Current.Value
	thenBlock := fn.NewBlock(w.nextBlockName("if.then"))
	mergeBlock := fn.NewBlock(w.nextBlockName("if.end"))

	w.ctx.Block().NewCondBr(truthy(w.ctx, cond), thenBlock, mergeBlock)

	w.ctx.SetBlock(thenBlock)
	if err := w.writeBlock(&stmt.Body); err != nil {
		return err
	}
	if w.ctx.Block().Term == nil {
		w.ctx.Block().NewBr(mergeBlock)
	}

	w.ctx.SetBlock(mergeBlock)
	return nil
}

func (w *Writer) emitSwitch(stmt *parser.Switch) error {
	selector, err := w.emitExpression(&stmt.Expression)
	if err != nil {
		return err
	}
	fn := w.ctx.Current.Value
	mergeBlock := fn.NewBlock(w.nextBlockName("switch.end"))

	for _, c := range stmt.Cases {
		caseLiteral, err := w.emitLiteral(&c.Literal)
		if err != nil {
			return err
		}
		caseBlock := fn.NewBlock(w.nextBlockName("switch.case"))
		nextCheck := fn.NewBlock(w.nextBlockName("switch.next"))

		cmp := w.ctx.Block().NewICmp(enum.IPredEQ, selector, caseLiteral)
		w.ctx.Block().NewCondBr(cmp, caseBlock, nextCheck)

		w.ctx.SetBlock(caseBlock)
		body := c.Body
		if err := w.writeBlock(&body); err != nil {
			return err
		}
		if w.ctx.Block().Term == nil {
			w.ctx.Block().NewBr(mergeBlock)
		}

		w.ctx.SetBlock(nextCheck)
	}

	if stmt.Default != nil {
		if err := w.writeBlock(stmt.Default); err != nil {
			return err
		}
	}
	if w.ctx.Block().Term == nil {
		w.ctx.Block().NewBr(mergeBlock)
	}

	w.ctx.SetBlock(mergeBlock)
	return nil
}

func (w *Writer) emitForLoop(stmt *parser.ForLoop) error {
	fn := w.ctx.Current.Value
	condBlock := fn.NewBlock(w.nextBlockName("for_condition"))
	bodyBlock := fn.NewBlock(w.nextBlockName("for_body"))
	postBlock := fn.NewBlock(w.nextBlockName("for_increment"))
	doneBlock := fn.NewBlock(w.nextBlockName("for_join"))

	// the initializer's scope encloses the whole loop (spec.md §4.B)
	w.pushScope()
	defer w.popScope()

	if err := w.writeBlockNoScope(&stmt.Init); err != nil {
		return err
	}
	w.ctx.Block().NewBr(condBlock)

	w.ctx.SetBlock(condBlock)
	cond, err := w.emitExpression(&stmt.Condition)
	if err != nil {
		return err
	}
	w.ctx.Block().NewCondBr(truthy(w.ctx, cond), bodyBlock, doneBlock)

	w.ctx.Loops.Push(llvmctx.LoopFrame{BodyBlock: bodyBlock, ContinueBlock: postBlock, BreakBlock: doneBlock})
	w.ctx.SetBlock(bodyBlock)
	if err := w.writeBlock(&stmt.Body); err != nil {
		w.ctx.Loops.Pop()
		return err
	}
	if w.ctx.Block().Term == nil {
		w.ctx.Block().NewBr(postBlock)
	}
	w.ctx.Loops.Pop()

	w.ctx.SetBlock(postBlock)
	if err := w.writeBlockNoScope(&stmt.Post); err != nil {
		return err
	}
	if w.ctx.Block().Term == nil {
		w.ctx.Block().NewBr(condBlock)
	}

	w.ctx.SetBlock(doneBlock)
	return nil
}

// writeBlockNoScope emits a block's statements in the *current* scope
// rather than pushing a new one, used for a for-loop's init/post
// blocks which share the loop's enclosing scope (spec.md §4.B).
func (w *Writer) writeBlockNoScope(block *parser.Block) error {
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
