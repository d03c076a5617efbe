package solc

import "strings"

// CombinedJSON is the `--combined-json <selectors>` output shape
// (spec.md §6), grounded on
// original_source/src/solc/combined_json/mod.rs.
type CombinedJSON struct {
	Contracts map[string]CombinedContract `json:"contracts"`
	Version   string                      `json:"version"`
}

// CombinedContract is one "file:contract" entry of CombinedJSON
// (original_source/src/solc/combined_json/contract.rs).
type CombinedContract struct {
	Hashes      map[string]string `json:"hashes,omitempty"`
	ABI         any               `json:"abi,omitempty"`
	Bin         string            `json:"bin,omitempty"`
	BinRuntime  string            `json:"bin-runtime,omitempty"`
	FactoryDeps map[string]string `json:"factory-deps,omitempty"`
}

// FromOutput assembles a CombinedJSON from a standard-json Output plus
// the selectors requested on the command line (spec.md §6's
// "<selectors>" argument). It fills bin and bin-runtime (both from the
// contract's EVM bytecode) and copies factory-deps; abi, hashes and
// any other selector name leave nothing filled.
func FromOutput(out Output, selectors []string) CombinedJSON {
	want := make(map[string]bool, len(selectors))
	for _, s := range selectors {
		want[strings.TrimSpace(s)] = true
	}

	combined := CombinedJSON{Contracts: make(map[string]CombinedContract), Version: out.Version}
	for file, byName := range out.Contracts {
		for name, contract := range byName {
			path := file + ":" + name
			entry := CombinedContract{}
			if want["bin"] && contract.EVM != nil && contract.EVM.Bytecode != nil {
				entry.Bin = contract.EVM.Bytecode.Object
			}
			if want["bin-runtime"] && contract.EVM != nil && contract.EVM.Bytecode != nil {
				entry.BinRuntime = contract.EVM.Bytecode.Object
			}
			if want["factory-deps"] && len(contract.FactoryDependencies) > 0 {
				entry.FactoryDeps = contract.FactoryDependencies
			}
			combined.Contracts[path] = entry
		}
	}
	return combined
}

// Entry returns the selector hex of the first contract entry under
// path whose name (by path prefix match) starts with entry, matching
// original_source/src/solc/combined_json/mod.rs's CombinedJson::entry.
func (c CombinedJSON) Entry(path, entry string) (string, bool) {
	for name, contract := range c.Contracts {
		if !strings.HasPrefix(name, path) {
			continue
		}
		if sel, ok := EntrySelector(contract.Hashes, entry); ok {
			return sel, true
		}
	}
	return "", false
}

// FullPath returns the "file:contract" key of CombinedJSON.Contracts
// whose contract name (the part after the last '/' and before the
// last ':') equals name, matching
// original_source/src/solc/combined_json/mod.rs's get_full_path.
func (c CombinedJSON) FullPath(name string) (string, bool) {
	for key := range c.Contracts {
		colon := strings.LastIndex(key, ":")
		if colon < 0 {
			continue
		}
		slash := strings.LastIndex(key[:colon], "/")
		start := slash + 1
		if key[start:colon] == name {
			return key, true
		}
	}
	return "", false
}
