package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/luxfi/yulc/solc"
)

// persistArtifacts writes one <Contract>.zbin (the hex-decoded
// bytecode) and <Contract>.zasm (the lowered LLVM IR text standing in
// for the assembly listing, see compiler.CompileProject's EVM.Bytecode
// comment) per contract under dir, matching spec.md §6's "Persisted on
// disk" clause.
func persistArtifacts(dir string, out *solc.Output, overwrite bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("yulc: creating %s: %w", dir, err)
	}

	for _, byName := range out.Contracts {
		for name, contract := range byName {
			if contract.EVM != nil && contract.EVM.Bytecode != nil {
				raw, err := hex.DecodeString(contract.EVM.Bytecode.Object)
				if err != nil {
					return fmt.Errorf("yulc: %s: decoding bytecode: %w", name, err)
				}
				if err := writeFile(filepath.Join(dir, name+".zbin"), raw, overwrite); err != nil {
					return err
				}
			}
			if contract.IRYulOptimized != nil {
				if err := writeFile(filepath.Join(dir, name+".zasm"), []byte(*contract.IRYulOptimized), overwrite); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// persistCombinedJSON writes combined.json at dir's root (dir may be
// empty, meaning the current directory), assembled from selectors via
// solc.FromOutput.
func persistCombinedJSON(dir string, out *solc.Output, selectors []string, overwrite bool) error {
	combined := solc.FromOutput(*out, selectors)
	encoded, err := json.MarshalIndent(combined, "", "  ")
	if err != nil {
		return fmt.Errorf("yulc: encoding combined-json: %w", err)
	}
	return writeFile(filepath.Join(dir, "combined.json"), encoded, overwrite)
}

func writeFile(path string, content []byte, overwrite bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("yulc: %s already exists (pass --overwrite)", path)
		}
		return fmt.Errorf("yulc: writing %s: %w", path, err)
	}
	defer f.Close()
	_, err = f.Write(content)
	return err
}
