package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/yulc/solc"
)

func TestWriteFileRefusesToOverwriteByDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	require.NoError(t, writeFile(path, []byte("first"), false))
	err := writeFile(path, []byte("second"), false)
	require.Error(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "first", string(content))
}

func TestWriteFileOverwritesWhenRequested(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	require.NoError(t, writeFile(path, []byte("first"), false))
	require.NoError(t, writeFile(path, []byte("second"), true))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "second", string(content))
}

func TestPersistArtifactsWritesZbinAndZasm(t *testing.T) {
	dir := t.TempDir()
	ir := "define void @main() {\nret void\n}"
	object := "abcd"
	hash := "deadbeef"
	out := &solc.Output{Contracts: map[string]map[string]solc.Contract{
		"A.yul": {
			"A": {
				IRYulOptimized: &ir,
				EVM:            &solc.EVMOutput{Bytecode: &solc.Bytecode{Object: object}},
				Hash:           &hash,
			},
		},
	}}

	require.NoError(t, persistArtifacts(dir, out, false))

	zasm, err := os.ReadFile(filepath.Join(dir, "A.zasm"))
	require.NoError(t, err)
	require.Equal(t, ir, string(zasm))

	zbin, err := os.ReadFile(filepath.Join(dir, "A.zbin"))
	require.NoError(t, err)
	require.Equal(t, []byte{0xab, 0xcd}, zbin)
}

func TestPersistCombinedJSONSelectsRequestedFields(t *testing.T) {
	dir := t.TempDir()
	bin := "cafe"
	out := &solc.Output{Contracts: map[string]map[string]solc.Contract{
		"A.yul": {"A": {EVM: &solc.EVMOutput{Bytecode: &solc.Bytecode{Object: bin}}}},
	}}

	require.NoError(t, persistCombinedJSON(dir, out, []string{"bin"}, false))

	content, err := os.ReadFile(filepath.Join(dir, "combined.json"))
	require.NoError(t, err)
	require.Contains(t, string(content), `"bin": "cafe"`)
}
