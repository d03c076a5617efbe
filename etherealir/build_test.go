package etherealir_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/yulc/etherealir"
	"github.com/luxfi/yulc/evmasm"
)

func tagInstr(tag int) evmasm.Instruction   { return evmasm.Instruction{Kind: evmasm.KindTag, Tag: tag} }
func pushTag(tag int) evmasm.Instruction    { return evmasm.Instruction{Kind: evmasm.KindPushTag, Tag: tag} }
func push(value string) evmasm.Instruction  { return evmasm.Instruction{Kind: evmasm.KindPush, Value: value} }
func generic(name string) evmasm.Instruction {
	return evmasm.Instruction{Kind: evmasm.KindGeneric, Name: name}
}

var (
	jump       = evmasm.Instruction{Kind: evmasm.KindJump}
	jumpi      = evmasm.Instruction{Kind: evmasm.KindJumpI}
	stop       = evmasm.Instruction{Kind: evmasm.KindTerminator, Name: "STOP"}
)

func TestBuildStraightLine(t *testing.T) {
	instrs := []evmasm.Instruction{stop}
	ir, err := etherealir.TryFromInstructions(instrs, etherealir.CodeTypeRuntime, 0)
	require.NoError(t, err)
	require.Len(t, ir.Function.Blocks, 1)
	entry := ir.Function.Entry()
	require.Equal(t, etherealir.ExitReturn, entry.Exit.Kind)
}

func TestBuildUnconditionalJump(t *testing.T) {
	instrs := []evmasm.Instruction{
		pushTag(1), jump,
		tagInstr(1), stop,
	}
	ir, err := etherealir.TryFromInstructions(instrs, etherealir.CodeTypeRuntime, 0)
	require.NoError(t, err)
	entry := ir.Function.Entry()
	require.Equal(t, etherealir.ExitUnconditional, entry.Exit.Kind)
	require.Len(t, entry.Successors, 1)

	target := ir.Function.Blocks[entry.Successors[0]]
	require.Equal(t, 1, target.Tag)
	require.Equal(t, etherealir.ExitReturn, target.Exit.Kind)
}

func TestBuildJumpIFallthrough(t *testing.T) {
	instrs := []evmasm.Instruction{
		push("01"), pushTag(2), jumpi,
		tagInstr(1), stop,
		tagInstr(2), stop,
	}
	ir, err := etherealir.TryFromInstructions(instrs, etherealir.CodeTypeRuntime, 0)
	require.NoError(t, err)
	entry := ir.Function.Entry()
	require.Equal(t, etherealir.ExitFallthrough, entry.Exit.Kind)
	require.Equal(t, 1, entry.Exit.Destination)
	require.Len(t, entry.Successors, 2)
}

func TestBuildCallReturnPattern(t *testing.T) {
	instrs := []evmasm.Instruction{
		pushTag(3), pushTag(1), jump,
		tagInstr(1), jump,
		tagInstr(3), stop,
	}
	ir, err := etherealir.TryFromInstructions(instrs, etherealir.CodeTypeRuntime, 0)
	require.NoError(t, err)

	entry := ir.Function.Entry()
	require.Equal(t, etherealir.ExitCall, entry.Exit.Kind)
	require.Equal(t, 1, entry.Exit.Callee)

	var callee *etherealir.Block
	for _, key := range ir.Function.Order {
		b := ir.Function.Blocks[key]
		if b.Tag == 1 {
			callee = b
		}
	}
	require.NotNil(t, callee)
	require.Equal(t, etherealir.ExitReturn, callee.Exit.Kind)
}

func TestBuildDynamicJumpFails(t *testing.T) {
	instrs := []evmasm.Instruction{push("01"), jump}
	_, err := etherealir.TryFromInstructions(instrs, etherealir.CodeTypeRuntime, 0)
	require.ErrorIs(t, err, etherealir.ErrDynamicJump)
}

func TestBuildStackUnderflowFails(t *testing.T) {
	instrs := []evmasm.Instruction{generic("ADD"), stop}
	_, err := etherealir.TryFromInstructions(instrs, etherealir.CodeTypeRuntime, 0)
	var underflow *etherealir.StackUnderflowError
	require.ErrorAs(t, err, &underflow)
}

func TestBuildCloneExplosionFails(t *testing.T) {
	instrs := []evmasm.Instruction{pushTag(1), jump, tagInstr(1), stop}
	_, err := etherealir.TryFromInstructions(instrs, etherealir.CodeTypeRuntime, 1)
	var explosion *etherealir.CloneExplosionError
	require.ErrorAs(t, err, &explosion)
}

func TestStackHashDistinguishesTagsNotValues(t *testing.T) {
	a := etherealir.Stack{Elements: []etherealir.Element{etherealir.Value(), etherealir.TagElement(5)}}
	b := etherealir.Stack{Elements: []etherealir.Element{etherealir.Value(), etherealir.TagElement(5)}}
	c := etherealir.Stack{Elements: []etherealir.Element{etherealir.TagElement(9), etherealir.TagElement(5)}}
	require.Equal(t, a.Hash(), b.Hash())
	require.NotEqual(t, a.Hash(), c.Hash())
}
