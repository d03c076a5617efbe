package evmasm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/yulc/evmasm"
)

func TestDecodeTagsAndPushes(t *testing.T) {
	raw := []byte(`[
		{"begin":0,"end":1,"name":"tag","value":"1","source":0},
		{"begin":1,"end":2,"name":"PUSH [tag]","value":"2","source":0},
		{"begin":2,"end":3,"name":"PUSH","value":"2a","source":0},
		{"begin":3,"end":4,"name":"JUMP","source":0}
	]`)
	instrs, err := evmasm.Decode(raw)
	require.NoError(t, err)
	require.Len(t, instrs, 4)
	require.Equal(t, evmasm.KindTag, instrs[0].Kind)
	require.Equal(t, 1, instrs[0].Tag)
	require.Equal(t, evmasm.KindPushTag, instrs[1].Kind)
	require.Equal(t, 2, instrs[1].Tag)
	require.Equal(t, evmasm.KindPush, instrs[2].Kind)
	require.Equal(t, "2a", instrs[2].Value)
	require.Equal(t, evmasm.KindJump, instrs[3].Kind)
}

func TestDecodeDupSwapPop(t *testing.T) {
	raw := []byte(`[
		{"begin":0,"end":1,"name":"DUP3","source":0},
		{"begin":1,"end":2,"name":"SWAP2","source":0},
		{"begin":2,"end":3,"name":"POP","source":0}
	]`)
	instrs, err := evmasm.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, evmasm.KindDup, instrs[0].Kind)
	require.Equal(t, 3, instrs[0].Index)
	require.Equal(t, evmasm.KindSwap, instrs[1].Kind)
	require.Equal(t, 2, instrs[1].Index)
	require.Equal(t, evmasm.KindPop, instrs[2].Kind)
}

func TestDecodeGenericOpcodeArity(t *testing.T) {
	raw := []byte(`[{"begin":0,"end":1,"name":"ADD","source":0}]`)
	instrs, err := evmasm.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, evmasm.KindGeneric, instrs[0].Kind)
	arity, ok := evmasm.Lookup("ADD")
	require.True(t, ok)
	require.Equal(t, evmasm.Arity{Pops: 2, Pushes: 1}, arity)
}

func TestDecodeUnrecognizedOpcode(t *testing.T) {
	raw := []byte(`[{"begin":0,"end":1,"name":"NOTANOPCODE","source":0}]`)
	_, err := evmasm.Decode(raw)
	require.ErrorIs(t, err, evmasm.ErrUnrecognizedOpcode)
}

func TestDecodeTerminators(t *testing.T) {
	for _, name := range []string{"RETURN", "STOP", "REVERT", "INVALID", "SELFDESTRUCT"} {
		raw := []byte(`[{"begin":0,"end":1,"name":"` + name + `","source":0}]`)
		instrs, err := evmasm.Decode(raw)
		require.NoError(t, err)
		require.Equal(t, evmasm.KindTerminator, instrs[0].Kind)
	}
}

func TestClassifyCodeCopy(t *testing.T) {
	contractHash := []evmasm.Instruction{
		{Kind: evmasm.KindGeneric, Name: "CALLDATASIZE"},
		{Kind: evmasm.KindCodeCopy, Name: "CODECOPY"},
	}
	require.Equal(t, evmasm.CodeCopyContractHash, evmasm.ClassifyCodeCopy(contractHash, 1))

	markerValue := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"[:40]
	marker := []evmasm.Instruction{
		{Kind: evmasm.KindPush, Name: "PUSH", Value: markerValue},
		{Kind: evmasm.KindCodeCopy, Name: "CODECOPY"},
	}
	require.Equal(t, evmasm.CodeCopyLibraryMarker, evmasm.ClassifyCodeCopy(marker, 1))

	staticData := []evmasm.Instruction{
		{Kind: evmasm.KindPush, Name: "PUSH data", Value: "aabb"},
		{Kind: evmasm.KindCodeCopy, Name: "CODECOPY"},
	}
	require.Equal(t, evmasm.CodeCopyStaticData, evmasm.ClassifyCodeCopy(staticData, 1))
}
