package compiler

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/luxfi/geth/crypto"

	"github.com/luxfi/yulc/etherealir"
	"github.com/luxfi/yulc/llvmctx"
	"github.com/luxfi/yulc/metrics"
	"github.com/luxfi/yulc/project"
	"github.com/luxfi/yulc/solc"
)

// CompileProject drives the whole standard-json Input through
// project's work-stealing pool (spec.md §5): one top-level contract
// identifier per source file, compiled independently and converging
// into a single Output. Cross-file dependencies aren't modeled here
// (see DESIGN.md) — every factory dependency this compiler recognizes
// is a same-file nested Yul object, resolved inside CompileYulObject's
// own llvmctx.DependencyRegistry.
//
// Each source's Content is sniffed by its first non-whitespace byte,
// the same discriminator solc.DataEntry uses for its object-or-string
// JSON shape: a leading '{' means pre-lowered EVM legacy-assembly JSON
// (spec.md §6 "evm.legacyAssembly"), anything else is raw Yul text.
func CompileProject(ctx context.Context, input solc.Input, libs llvmctx.LibraryMap, workers int, m *metrics.Metrics) (*solc.Output, error) {
	p := project.New(func(ctx context.Context, id string, src project.Source, _ project.ResolveFunc) (*project.Artifact, error) {
		result, err := compileSource(src.Path, src.Content, libs)
		if err != nil {
			return nil, err
		}
		hash := crypto.Keccak256Hash([]byte(result.IR))
		return &project.Artifact{
			Identifier: id + ":" + result.Name,
			Bytecode:   []byte(result.IR),
			Hash:       hash,
		}, nil
	}, m)

	for file, source := range input.Sources {
		p.AddSource(file, project.Source{Path: file, Content: source.Content})
	}

	artifacts, err := p.Build(ctx, workers)
	if err != nil {
		return nil, fmt.Errorf("compiler: project build: %w", err)
	}

	out := &solc.Output{Contracts: make(map[string]map[string]solc.Contract)}
	for file, artifact := range artifacts {
		settings := input.Settings
		ir := string(artifact.Bytecode)
		hash := hex.EncodeToString(artifact.Hash[:])

		contract := solc.Contract{Hash: &hash}
		if settings.Wants(file, solc.SelectionYul) {
			contract.IRYulOptimized = &ir
		}
		if settings.Wants(file, solc.SelectionEVM) {
			// This compiler has no native zkEVM backend (spec.md §2's F
			// stage is LLVM IR text, not machine code), so the
			// "bytecode" standard-json reports is the hex encoding of
			// that IR text rather than an assembled opcode stream.
			contract.EVM = &solc.EVMOutput{
				Bytecode: &solc.Bytecode{Object: hex.EncodeToString(artifact.Bytecode)},
			}
		}

		name := artifact.Identifier
		if idx := strings.LastIndex(name, ":"); idx >= 0 {
			name = name[idx+1:]
		}
		out.Contracts[file] = map[string]solc.Contract{name: contract}
	}
	return out, nil
}

// compileSource picks the Yul or EVM-legacy-assembly pipeline for one
// source file's content.
func compileSource(path, content string, libs llvmctx.LibraryMap) (*Result, error) {
	trimmed := strings.TrimLeftFunc(content, unicode.IsSpace)
	if !strings.HasPrefix(trimmed, "{") {
		return CompileYulSource(path, content, libs)
	}

	var asm solc.RawAssembly
	if err := json.Unmarshal([]byte(trimmed), &asm); err != nil {
		return nil, fmt.Errorf("compiler: %s: decoding legacy assembly: %w", path, err)
	}
	result, err := CompileLegacyAssembly(contractNameFromPath(path), &asm, etherealir.CodeTypeDeploy, libs)
	if err != nil {
		return nil, err
	}
	result.Name = contractNameFromPath(path)
	return result, nil
}

func contractNameFromPath(path string) string {
	name := path
	if idx := strings.LastIndexAny(name, "/\\"); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}
