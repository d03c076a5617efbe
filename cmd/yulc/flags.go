package main

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/luxfi/yulc/config"
	"github.com/luxfi/yulc/internal/flags"
)

// appFlags declares yulc's flag surface directly as cli.Flag values,
// grouped by Category the way _examples/luxfi-evm/cmd/evm-node/
// chaincmd/chaincmd.go groups its own flags, and named with the same
// keys config.Key* uses so the two packages agree on vocabulary.
var appFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     config.KeyInput,
		Usage:    "input .yul or .sol file (mutually exclusive with --standard-json)",
		Category: flags.CompilerCategory,
	},
	&cli.BoolFlag{
		Name:     config.KeyStandardJSON,
		Usage:    "read Input/produce Output as standard-json on stdin/stdout",
		Category: flags.CompilerCategory,
	},
	&cli.IntFlag{
		Name:     config.KeyOptimization,
		Usage:    "optimization level 0-3",
		Category: flags.CompilerCategory,
	},
	&cli.StringSliceFlag{
		Name:     config.KeyLibraries,
		Usage:    "file:contract=0xADDR library address, repeatable",
		Category: flags.CompilerCategory,
	},
	&cli.StringFlag{
		Name:     config.KeyBasePath,
		Usage:    "base path passed through to the upstream Solidity compiler",
		Category: flags.CompilerCategory,
	},
	&cli.StringSliceFlag{
		Name:     config.KeyIncludePath,
		Usage:    "extra include path, repeatable",
		Category: flags.CompilerCategory,
	},
	&cli.StringFlag{
		Name:     config.KeyAllowPaths,
		Usage:    "comma-separated list of additional allowed paths",
		Category: flags.CompilerCategory,
	},
	&cli.IntFlag{
		Name:     config.KeyWorkers,
		Usage:    "worker pool size for project.Build (0: GOMAXPROCS)",
		Category: flags.CompilerCategory,
	},
	&cli.StringFlag{
		Name:     config.KeyConfigFile,
		Usage:    "optional yulc.yaml project config file",
		Category: flags.CompilerCategory,
	},
	&cli.StringFlag{
		Name:     config.KeyOutputDir,
		Usage:    "directory to persist .zbin/.zasm/combined.json into",
		Category: flags.OutputCategory,
	},
	&cli.BoolFlag{
		Name:     config.KeyOverwrite,
		Usage:    "overwrite existing output files",
		Category: flags.OutputCategory,
	},
	&cli.StringSliceFlag{
		Name:     config.KeyCombinedJSON,
		Usage:    "comma-separated combined-json selectors (abi,bin,bin-runtime,hashes)",
		Category: flags.OutputCategory,
	},
	&cli.BoolFlag{
		Name:     config.KeyDumpYul,
		Usage:    "dump the Yul IR consumed",
		Category: flags.OutputCategory,
	},
	&cli.BoolFlag{
		Name:     config.KeyDumpLLVM,
		Usage:    "dump the emitted LLVM IR text",
		Category: flags.OutputCategory,
	},
	&cli.BoolFlag{
		Name:     config.KeyDumpAssembly,
		Usage:    "dump the decoded legacy assembly",
		Category: flags.OutputCategory,
	},
	&cli.BoolFlag{
		Name:     verboseFlagName,
		Usage:    "enable debug-level logging",
		Category: flags.LoggingCategory,
	},
}

const verboseFlagName = "verbose"

// configFromContext builds a *config.Config directly from a parsed
// cli.Context, bypassing config.BuildViper's pflag binding since
// urfave/cli already parsed the flags here.
func configFromContext(c *cli.Context) *config.Config {
	var allowPaths []string
	if raw := c.String(config.KeyAllowPaths); raw != "" {
		allowPaths = strings.Split(raw, ",")
	}

	input := c.String(config.KeyInput)
	if input == "" {
		input = c.Args().First()
	}

	return &config.Config{
		Input:        input,
		StandardJSON: c.Bool(config.KeyStandardJSON),
		CombinedJSON: c.StringSlice(config.KeyCombinedJSON),
		Optimization: c.Int(config.KeyOptimization),
		OutputDir:    c.String(config.KeyOutputDir),
		Overwrite:    c.Bool(config.KeyOverwrite),
		Libraries:    c.StringSlice(config.KeyLibraries),
		DumpYul:      c.Bool(config.KeyDumpYul),
		DumpLLVM:     c.Bool(config.KeyDumpLLVM),
		DumpAssembly: c.Bool(config.KeyDumpAssembly),
		BasePath:     c.String(config.KeyBasePath),
		IncludePaths: c.StringSlice(config.KeyIncludePath),
		AllowPaths:   allowPaths,
		Workers:      c.Int(config.KeyWorkers),
	}
}
