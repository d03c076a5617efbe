// Package solc implements spec.md §6's external JSON surfaces: the
// standard-json input/output the core is driven by, the combined-json
// view a CLI assembles from it, and the formatted diagnostics of §7.
// Grounded on original_source/src/solc/*.
package solc

import (
	"encoding/hex"
	"strings"

	"github.com/luxfi/geth/crypto"
)

// Selector returns the 4-byte Solidity function selector for a
// canonical signature such as "transfer(address,uint256)": the first
// four bytes of its keccak256 hash (original_source/src/solc/hashes.rs
// "Returns the signature hash of the specified contract and entry").
func Selector(signature string) [4]byte {
	digest := crypto.Keccak256([]byte(signature))
	var out [4]byte
	copy(out[:], digest[:4])
	return out
}

// SelectorHex is Selector formatted the way solc's combined-json
// "hashes" field stores it: lowercase hex, no "0x" prefix.
func SelectorHex(signature string) string {
	sel := Selector(signature)
	return hex.EncodeToString(sel[:])
}

// EntrySelector finds the first ABI entry in hashes (a "signature" ->
// "selector hex" map, as produced for one contract's combined-json
// "hashes" field) whose name matches entry, per
// original_source/src/solc/combined_json/contract.rs's Contract::entry:
// a signature "matches" when it starts with "entry(".
func EntrySelector(hashes map[string]string, entry string) (string, bool) {
	prefix := entry + "("
	for signature, selector := range hashes {
		if strings.HasPrefix(signature, prefix) {
			return selector, true
		}
	}
	return "", false
}
