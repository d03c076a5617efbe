// Package compiler is the top-level pipeline that wires the core
// components of spec.md §4 into a single compile: lexer+parser+
// writer/yul for Yul source, evmasm+etherealir+writer/etherealir for
// EVM legacy assembly, converging on llvmctx.Context either way
// (spec.md §2 "Both converge on F, which drives E to emit LLVM IR").
// Grounded on original_source/src/solc/pipeline.rs's Yul/EVM pipeline
// split.
package compiler

import (
	"encoding/json"
	"fmt"

	"github.com/luxfi/yulc/etherealir"
	"github.com/luxfi/yulc/evmasm"
	"github.com/luxfi/yulc/llvmctx"
	"github.com/luxfi/yulc/parser"
	"github.com/luxfi/yulc/solc"
	etherealirwriter "github.com/luxfi/yulc/writer/etherealir"
	yulwriter "github.com/luxfi/yulc/writer/yul"
)

// Result is one object/function's compile output: the LLVM IR text
// plus any warnings collected along the way (spec.md §7).
type Result struct {
	Name     string
	IR       string
	Warnings []solc.Error
}

// CloneLimit bounds the Ethereal IR worklist (spec.md §7 "IR: ...
// clone explosion"); exceeding it is reported as an error rather than
// looping forever on a pathological input.
const CloneLimit = 4096

// CompileYulSource lexes, parses and lowers one Yul source file.
// Nested objects are lowered into the same module and registered with
// the dependency registry (spec.md §3 DependencyRegistry), which
// compiles one only when the code names it; the Result carries no
// content hash and no factory_dependencies map.
func CompileYulSource(file, src string, libs llvmctx.LibraryMap) (*Result, error) {
	p := parser.New(src)
	obj, err := p.ParseObject()
	if err != nil {
		return nil, fmt.Errorf("compiler: %s: parse: %w", file, err)
	}
	return CompileYulObject(file, &obj, libs)
}

// CompileYulObject lowers an already-parsed Object. The top-level
// deploy object and every object nested under it share the same
// warning scan and dependency-compile closure.
func CompileYulObject(file string, obj *parser.Object, libs llvmctx.LibraryMap) (*Result, error) {
	ir, err := compileObjectIR(obj, libs)
	if err != nil {
		return nil, err
	}

	result := &Result{Name: obj.Name, IR: ir}
	for _, hit := range scanWarnings(obj, file) {
		switch hit.Name {
		case "ecrecover":
			result.Warnings = append(result.Warnings, solc.WarningEcrecover(file))
		case "extcodesize":
			result.Warnings = append(result.Warnings, solc.WarningExtcodesize(file))
		}
	}
	return result, nil
}

func compileObjectIR(obj *parser.Object, libs llvmctx.LibraryMap) (string, error) {
	var compileDependency func(*parser.Object) ([]byte, error)
	compileDependency = func(dep *parser.Object) ([]byte, error) {
		text, err := compileObjectIRWithDeps(dep, libs, compileDependency)
		return []byte(text), err
	}
	return compileObjectIRWithDeps(obj, libs, compileDependency)
}

func compileObjectIRWithDeps(obj *parser.Object, libs llvmctx.LibraryMap, compileDependency func(*parser.Object) ([]byte, error)) (string, error) {
	deps := llvmctx.NewDependencyRegistry(compileDependency)
	for i := range obj.Nested {
		deps.Register(obj.Nested[i].Name, &obj.Nested[i])
	}

	ctx := llvmctx.New(obj.Name, etherealir.CodeTypeDeploy, deps, libs)
	w := yulwriter.New(ctx)
	if err := w.WriteObject(obj); err != nil {
		return "", fmt.Errorf("compiler: %s: %w", obj.Name, err)
	}
	return ctx.Module.String(), nil
}

// CompileLegacyAssembly decodes and lowers one EVM legacy-assembly
// section (spec.md §4.C-§4.F). Only asm.Code is lowered: sub-assemblies
// under .data are not compiled, and none is registered as a dependency.
func CompileLegacyAssembly(name string, asm *solc.RawAssembly, codeType etherealir.CodeType, libs llvmctx.LibraryMap) (*Result, error) {
	code, err := marshalCode(asm.Code)
	if err != nil {
		return nil, fmt.Errorf("compiler: %s: %w", name, err)
	}

	instrs, err := evmasm.Decode(code)
	if err != nil {
		return nil, fmt.Errorf("compiler: %s: decode: %w", name, err)
	}

	fn, err := etherealir.Build(instrs, codeType, CloneLimit)
	if err != nil {
		return nil, fmt.Errorf("compiler: %s: build: %w", name, err)
	}

	var compileDependency func(*parser.Object) ([]byte, error)
	compileDependency = func(dep *parser.Object) ([]byte, error) {
		text, err := compileObjectIRWithDeps(dep, libs, compileDependency)
		return []byte(text), err
	}
	deps := llvmctx.NewDependencyRegistry(compileDependency)

	ctx := llvmctx.New(name, codeType, deps, libs)
	w := etherealirwriter.New(ctx)
	if err := w.WriteFunction(name, fn); err != nil {
		return nil, fmt.Errorf("compiler: %s: %w", name, err)
	}
	return &Result{IR: ctx.Module.String()}, nil
}

func marshalCode(instrs []solc.RawInstruction) ([]byte, error) {
	return json.Marshal(instrs)
}
