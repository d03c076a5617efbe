package compiler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/yulc/llvmctx"
	"github.com/luxfi/yulc/solc"
)

func TestCompileProjectMultipleFiles(t *testing.T) {
	input := solc.Input{
		Language: solc.LanguageSolidity,
		Sources: map[string]solc.Source{
			"A.yul": {Content: `object "A" { code { } }`},
			"B.yul": {Content: `object "B" { code { } }`},
		},
		Settings: solc.Settings{
			OutputSelection: map[string][]string{
				"*": {string(solc.SelectionYul)},
			},
		},
	}

	out, err := CompileProject(context.Background(), input, llvmctx.LibraryMap{}, 2, nil)
	require.NoError(t, err)
	require.Len(t, out.Contracts, 2)

	a, ok := out.Contracts["A.yul"]["A"]
	require.True(t, ok)
	require.NotNil(t, a.IRYulOptimized)
	require.Contains(t, *a.IRYulOptimized, "define")
	require.NotNil(t, a.Hash)

	b, ok := out.Contracts["B.yul"]["B"]
	require.True(t, ok)
	require.NotNil(t, b.IRYulOptimized)
}

func TestCompileProjectOmitsUnselectedYulOutput(t *testing.T) {
	input := solc.Input{
		Sources: map[string]solc.Source{
			"A.yul": {Content: `object "A" { code { } }`},
		},
		Settings: solc.Settings{
			OutputSelection: map[string][]string{
				"*": {string(solc.SelectionABI)},
			},
		},
	}

	out, err := CompileProject(context.Background(), input, llvmctx.LibraryMap{}, 1, nil)
	require.NoError(t, err)

	a, ok := out.Contracts["A.yul"]["A"]
	require.True(t, ok)
	require.Nil(t, a.IRYulOptimized)
	require.NotNil(t, a.Hash)
}

func TestCompileProjectPropagatesParseErrors(t *testing.T) {
	input := solc.Input{
		Sources: map[string]solc.Source{
			"Broken.yul": {Content: `object "Broken" { codeeee { } }`},
		},
	}

	_, err := CompileProject(context.Background(), input, llvmctx.LibraryMap{}, 1, nil)
	require.Error(t, err)
}

func TestCompileProjectDetectsLegacyAssemblyContent(t *testing.T) {
	input := solc.Input{
		Sources: map[string]solc.Source{
			"Asm.yul": {Content: `  {"code":[{"begin":0,"end":1,"name":"STOP","source":0}]}`},
		},
		Settings: solc.Settings{
			OutputSelection: map[string][]string{
				"*": {string(solc.SelectionEVM)},
			},
		},
	}

	out, err := CompileProject(context.Background(), input, llvmctx.LibraryMap{}, 1, nil)
	require.NoError(t, err)

	contract, ok := out.Contracts["Asm.yul"]["Asm"]
	require.True(t, ok)
	require.NotNil(t, contract.EVM)
	require.NotNil(t, contract.EVM.Bytecode)
	require.NotEmpty(t, contract.EVM.Bytecode.Object)
}
