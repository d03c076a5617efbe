package llvmctx

import (
	"math/big"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/value"
	"github.com/luxfi/geth/crypto"
)

// DeployAddressStorageKey is the pseudo-key immutable_store/load use
// to record the address a contract is deployed to during constructor
// emission, so runtime code can later recover it via immutable_load
// without a real storage slot existing for it (grounded on
// original_source/src/evm/ethereal_ir/entry_link.rs's
// EtherealIR::DEPLOY_ADDRESS_STORAGE_KEY).
const DeployAddressStorageKey = "$deploy_address"

func immutableSlot(key string) *constant.Int {
	digest := crypto.Keccak256([]byte(key))
	n := new(big.Int).SetBytes(digest)
	slot, err := constant.NewIntFromString(FieldType(), n.String())
	if err != nil {
		// FieldType is 256 bits and a keccak256 digest never exceeds
		// that range, so this can only fire on a constant-parsing bug.
		panic(err)
	}
	return slot
}

// StoreImmutable emits a call recording value under key's keccak256
// slot, for later recovery by LoadImmutable in deployed code
// (spec.md §4.E "Immutables").
func (c *Context) StoreImmutable(key string, v value.Value) {
	slot := immutableSlot(key)
	fn := c.Intrinsic(IntrinsicStorageStore)
	c.Block().NewCall(fn, slot, v)
}

// LoadImmutable emits a call recovering the value previously recorded
// under key via StoreImmutable.
func (c *Context) LoadImmutable(key string) value.Value {
	slot := immutableSlot(key)
	fn := c.Intrinsic(IntrinsicStorageLoad)
	return c.Block().NewCall(fn, slot)
}
