package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/yulc/config"
)

func TestResolveLibrariesParsesAddresses(t *testing.T) {
	libs, err := resolveLibraries([]string{"A.yul:Lib=0x00000000000000000000000000000000000001"})
	require.NoError(t, err)

	addr, err := libs.Resolve("A.yul:Lib")
	require.NoError(t, err)
	require.Equal(t, byte(1), addr[19])
}

func TestResolveLibrariesRejectsMalformedEntry(t *testing.T) {
	_, err := resolveLibraries([]string{"not-an-entry"})
	require.Error(t, err)
}

func TestRunSingleFileCompilesYulToIR(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Test.yul")
	require.NoError(t, os.WriteFile(path, []byte(`object "Test" { code { } }`), 0o644))

	cfg := &config.Config{Input: path}
	require.NoError(t, run(cfg, false))
}

func TestRunSingleFileRejectsSolInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Test.sol")
	require.NoError(t, os.WriteFile(path, []byte(`contract Test {}`), 0o644))

	cfg := &config.Config{Input: path}
	err := run(cfg, false)
	require.Error(t, err)
}

func TestRunRequiresInputOrStandardJSON(t *testing.T) {
	err := run(&config.Config{}, false)
	require.Error(t, err)
}
