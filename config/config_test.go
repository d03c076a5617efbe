package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func TestBuildConfigFromFlags(t *testing.T) {
	fs := BuildFlagSet()
	v, err := BuildViper(fs, []string{
		"--input=Test.yul",
		"--optimization=2",
		"--output-dir=out",
		"--libraries=lib.yul:Math=0x0000000000000000000000000000000000000001",
		"--workers=4",
	})
	require.NoError(t, err)

	cfg, err := BuildConfig(v)
	require.NoError(t, err)
	require.Equal(t, "Test.yul", cfg.Input)
	require.Equal(t, 2, cfg.Optimization)
	require.Equal(t, "out", cfg.OutputDir)
	require.Equal(t, 4, cfg.Workers)
	require.Equal(t, []string{"lib.yul:Math=0x0000000000000000000000000000000000000001"}, cfg.Libraries)
}

func TestBuildConfigRejectsOutOfRangeOptimization(t *testing.T) {
	fs := BuildFlagSet()
	v, err := BuildViper(fs, []string{"--optimization=9"})
	require.NoError(t, err)

	_, err = BuildConfig(v)
	require.Error(t, err)
}

func TestParseLibraries(t *testing.T) {
	out, err := ParseLibraries([]string{"lib.yul:Math=0x0000000000000000000000000000000000000001"})
	require.NoError(t, err)
	require.Equal(t, "0x0000000000000000000000000000000000000001", out["lib.yul"]["Math"])
}

func TestParseLibrariesRejectsMalformed(t *testing.T) {
	_, err := ParseLibraries([]string{"not-a-valid-entry"})
	require.Error(t, err)
}

func TestBuildViperLayersConfigFileUnderFlags(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/yulc.yaml"
	require.NoError(t, writeFile(path, "optimization: 1\nworkers: 2\n"))

	fs := BuildFlagSet()
	v, err := BuildViper(fs, []string{"--config=" + path, "--optimization=3"})
	require.NoError(t, err)

	cfg, err := BuildConfig(v)
	require.NoError(t, err)
	// the explicit flag wins over the config file's value
	require.Equal(t, 3, cfg.Optimization)
	require.Equal(t, 2, cfg.Workers)
}
