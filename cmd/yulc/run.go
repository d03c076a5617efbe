package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/luxfi/geth/crypto"

	"github.com/luxfi/yulc/compiler"
	"github.com/luxfi/yulc/config"
	"github.com/luxfi/yulc/llvmctx"
	"github.com/luxfi/yulc/log"
	"github.com/luxfi/yulc/solc"
)

// run dispatches on cfg's mode (spec.md §6's mutually-exclusive
// --standard-json / <input.yul>) and persists whatever --output-dir
// and --combined-json request. verbose additionally logs per-file
// progress at info level (--verbose, internal/flags.LoggingCategory).
func run(cfg *config.Config, verbose bool) error {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	libs, err := resolveLibraries(cfg.Libraries)
	if err != nil {
		return err
	}

	var out *solc.Output
	switch {
	case cfg.StandardJSON:
		if verbose {
			log.Info("compiling standard-json input", "workers", workers)
		}
		out, err = runStandardJSON(workers, libs)
	case cfg.Input != "":
		if verbose {
			log.Info("compiling", "file", cfg.Input)
		}
		out, err = runSingleFile(cfg, libs)
	default:
		err = fmt.Errorf("yulc: one of --standard-json, --input or <input.yul> is required")
	}
	if err != nil {
		return err
	}

	switch {
	case cfg.StandardJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("yulc: encoding standard-json output: %w", err)
		}
	case cfg.OutputDir == "":
		// No JSON report and nothing to persist: print the lowered IR
		// text directly (spec.md §1 "Output is LLVM IR text").
		for _, byName := range out.Contracts {
			for _, contract := range byName {
				if contract.IRYulOptimized != nil {
					fmt.Println(*contract.IRYulOptimized)
				}
			}
		}
	}
	for _, diag := range out.Errors {
		fmt.Fprintln(diagnosticsWriter(), diag.FormattedMessage)
	}

	if cfg.OutputDir != "" {
		if err := persistArtifacts(cfg.OutputDir, out, cfg.Overwrite); err != nil {
			return err
		}
	}
	if len(cfg.CombinedJSON) > 0 {
		if err := persistCombinedJSON(cfg.OutputDir, out, cfg.CombinedJSON, cfg.Overwrite); err != nil {
			return err
		}
	}
	return nil
}

func resolveLibraries(entries []string) (llvmctx.LibraryMap, error) {
	parsed, err := config.ParseLibraries(entries)
	if err != nil {
		return nil, fmt.Errorf("yulc: %w", err)
	}
	settings := solc.Settings{Libraries: parsed}
	return llvmctx.LibraryMap(settings.LibraryAddresses()), nil
}

// runStandardJSON reads a solc.Input from stdin (spec.md §6's
// "Standard-JSON input"), compiling every source file through
// compiler.CompileProject.
func runStandardJSON(workers int, libs llvmctx.LibraryMap) (*solc.Output, error) {
	var input solc.Input
	dec := json.NewDecoder(os.Stdin)
	if err := dec.Decode(&input); err != nil {
		return nil, fmt.Errorf("yulc: decoding standard-json input: %w", err)
	}

	out, err := compiler.CompileProject(context.Background(), input, libs, workers, nil)
	if err != nil {
		return &solc.Output{Errors: []solc.Error{{
			Component:        "general",
			Message:          err.Error(),
			FormattedMessage: err.Error(),
			Severity:         "error",
			Type:             "Error",
		}}}, err
	}
	return out, nil
}

// runSingleFile lowers one standalone Yul source file (spec.md §6's
// "<input.yul>" mode). Invoking the upstream Solidity compiler for a
// .sol input is explicitly out of scope (spec.md §1 "Invocation of the
// external Solidity compiler" is an external collaborator), so only
// .yul input is accepted directly here.
func runSingleFile(cfg *config.Config, libs llvmctx.LibraryMap) (*solc.Output, error) {
	if ext := filepath.Ext(cfg.Input); ext != ".yul" {
		return nil, fmt.Errorf("yulc: %s: direct .sol input requires an external Solidity frontend invocation, which this driver does not perform — pass pre-lowered Yul/standard-json input instead", cfg.Input)
	}

	src, err := os.ReadFile(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("yulc: %w", err)
	}

	if cfg.DumpYul {
		log.Debug("dumping yul source", "file", cfg.Input)
		fmt.Fprintln(os.Stderr, string(src))
	}

	result, err := compiler.CompileYulSource(cfg.Input, string(src), libs)
	if err != nil {
		return nil, err
	}

	if cfg.DumpLLVM {
		log.Debug("dumping llvm ir", "file", cfg.Input)
		fmt.Fprintln(os.Stderr, result.IR)
	}

	hash := crypto.Keccak256Hash([]byte(result.IR))
	hashHex := hex.EncodeToString(hash[:])
	ir := result.IR
	contract := solc.Contract{
		IRYulOptimized: &ir,
		EVM:            &solc.EVMOutput{Bytecode: &solc.Bytecode{Object: hex.EncodeToString([]byte(result.IR))}},
		Hash:           &hashHex,
	}

	out := &solc.Output{Contracts: map[string]map[string]solc.Contract{
		cfg.Input: {result.Name: contract},
	}}
	for _, w := range result.Warnings {
		out.Errors = append(out.Errors, w)
	}
	return out, nil
}
