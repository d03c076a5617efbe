package solc

import "github.com/luxfi/geth/common"

// LanguageSolidity is the standard-json "language" value for Solidity
// input (spec.md §6); nothing in yulc checks Input.Language against it.
const LanguageSolidity = "Solidity"

// Input is the standard-json input the core is driven by (spec.md §6
// "passed to upstream Solidity compiler, then consumed"), grounded on
// original_source/src/solc/standard_json/input/mod.rs.
type Input struct {
	Language string            `json:"language"`
	Sources  map[string]Source `json:"sources"`
	Settings Settings          `json:"settings"`
}

// Source is one input file's content, keyed by path in Input.Sources.
type Source struct {
	Content string `json:"content"`
}

// Settings is the standard-json "settings" object (spec.md §6
// "libraries, outputSelection, optimizer: { enabled }").
type Settings struct {
	Libraries       map[string]map[string]string `json:"libraries,omitempty"`
	OutputSelection map[string][]string          `json:"outputSelection"`
	Optimizer       Optimizer                    `json:"optimizer"`
}

// Optimizer is the standard-json "optimizer" sub-object.
type Optimizer struct {
	Enabled bool `json:"enabled"`
}

// Selection names one of the output artifacts "outputSelection" can
// request per file (original_source/.../settings/selection.rs).
type Selection string

const (
	SelectionABI = Selection("abi")
	SelectionAST = Selection("ast")
	SelectionYul = Selection("irOptimized")
	SelectionEVM = Selection("evm.legacyAssembly")
)

// LibraryAddresses flattens Settings.Libraries into the file:contract
// -> address form llvmctx.LibraryMap needs, parsing each hex address
// with common.HexToAddress.
func (s Settings) LibraryAddresses() map[string]common.Address {
	out := make(map[string]common.Address)
	for file, contracts := range s.Libraries {
		for contract, addr := range contracts {
			out[file+":"+contract] = common.HexToAddress(addr)
		}
	}
	return out
}

// Wants reports whether outputSelection requests selection for file
// (the "*" wildcard file entry applies to every source), per solc's
// own outputSelection matching rules.
func (s Settings) Wants(file string, selection Selection) bool {
	for _, key := range []string{file, "*"} {
		for _, requested := range s.OutputSelection[key] {
			if requested == string(selection) {
				return true
			}
		}
	}
	return false
}
