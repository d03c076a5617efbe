package etherealir_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	core "github.com/luxfi/yulc/etherealir"
	"github.com/luxfi/yulc/evmasm"
	"github.com/luxfi/yulc/llvmctx"
	"github.com/luxfi/yulc/writer/etherealir"
)

func tagInstr(tag int) evmasm.Instruction  { return evmasm.Instruction{Kind: evmasm.KindTag, Tag: tag} }
func pushTag(tag int) evmasm.Instruction   { return evmasm.Instruction{Kind: evmasm.KindPushTag, Tag: tag} }
func push(value string) evmasm.Instruction { return evmasm.Instruction{Kind: evmasm.KindPush, Value: value} }
func generic(name string) evmasm.Instruction {
	return evmasm.Instruction{Kind: evmasm.KindGeneric, Name: name}
}

var (
	jump  = evmasm.Instruction{Kind: evmasm.KindJump}
	jumpi = evmasm.Instruction{Kind: evmasm.KindJumpI}
	stop  = evmasm.Instruction{Kind: evmasm.KindTerminator, Name: "STOP"}
)

func newContext() *llvmctx.Context {
	deps := llvmctx.NewDependencyRegistry(nil)
	return llvmctx.New("test", core.CodeTypeRuntime, deps, llvmctx.LibraryMap{})
}

func TestWriteFunctionStraightLine(t *testing.T) {
	instrs := []evmasm.Instruction{
		push("01"), push("02"), generic("ADD"), evmasm.Instruction{Kind: evmasm.KindPop}, stop,
	}
	built, err := core.TryFromInstructions(instrs, core.CodeTypeRuntime, 8)
	require.NoError(t, err)

	ctx := newContext()
	w := etherealir.New(ctx)
	require.NoError(t, w.WriteFunction("runtime", built.Function))
	require.Contains(t, ctx.Functions, "runtime")
}

func TestWriteFunctionUnconditionalJump(t *testing.T) {
	instrs := []evmasm.Instruction{
		pushTag(1), jump,
		tagInstr(1), stop,
	}
	built, err := core.TryFromInstructions(instrs, core.CodeTypeRuntime, 8)
	require.NoError(t, err)

	ctx := newContext()
	w := etherealir.New(ctx)
	require.NoError(t, w.WriteFunction("runtime", built.Function))
	require.Len(t, ctx.Functions, 1)
}

func TestWriteFunctionJumpIFallthrough(t *testing.T) {
	instrs := []evmasm.Instruction{
		push("01"), pushTag(2), jumpi,
		tagInstr(1), stop,
		tagInstr(2), stop,
	}
	built, err := core.TryFromInstructions(instrs, core.CodeTypeRuntime, 8)
	require.NoError(t, err)

	ctx := newContext()
	w := etherealir.New(ctx)
	require.NoError(t, w.WriteFunction("runtime", built.Function))
}

func TestWriteFunctionCallReturn(t *testing.T) {
	// tag 1 is a recovered callee: entered via a push-push-jump idiom
	// and returning to its caller's continuation (spec.md §4.D.4).
	instrs := []evmasm.Instruction{
		pushTag(2), pushTag(1), jump,
		tagInstr(1), jump,
		tagInstr(2), stop,
	}
	built, err := core.TryFromInstructions(instrs, core.CodeTypeRuntime, 8)
	require.NoError(t, err)

	ctx := newContext()
	w := etherealir.New(ctx)
	require.NoError(t, w.WriteFunction("runtime", built.Function))
	require.True(t, len(ctx.Functions) >= 1)
}

func TestWriteFunctionUnhandledOpcodeErrors(t *testing.T) {
	instrs := []evmasm.Instruction{
		generic("MCOPY"), stop,
	}
	built, err := core.TryFromInstructions(instrs, core.CodeTypeRuntime, 8)
	require.NoError(t, err)

	ctx := newContext()
	w := etherealir.New(ctx)
	err = w.WriteFunction("runtime", built.Function)
	require.Error(t, err)
}
