package llvmctx

import (
	"fmt"

	"github.com/luxfi/geth/common"
)

// LibraryMap resolves a "file:contract" linker-symbol placeholder to
// the deployed address it was linked against (spec.md §3). Populated
// once at compile time from the `--libraries` flag / standard-json
// input and never mutated afterwards, so lookups need no locking.
type LibraryMap map[string]common.Address

// Resolve returns the address linked for symbol, or
// ErrUnresolvedLibrary if the symbol was never provided.
func (m LibraryMap) Resolve(symbol string) (common.Address, error) {
	addr, ok := m[symbol]
	if !ok {
		return common.Address{}, fmt.Errorf("%w: %s", ErrUnresolvedLibrary, symbol)
	}
	return addr, nil
}
