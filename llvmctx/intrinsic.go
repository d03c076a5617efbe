package llvmctx

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// IntrinsicFunction is a symbolic name for a target intrinsic the
// writer calls into (spec.md §4.E). The concrete declarations are
// created lazily and memoized the first time each is requested.
type IntrinsicFunction int

const (
	IntrinsicStorageLoad IntrinsicFunction = iota
	IntrinsicStorageStore
	IntrinsicTransientStorageLoad
	IntrinsicTransientStorageStore
	IntrinsicGetFromContext
	IntrinsicMemoryCopyFromChild
	IntrinsicMemoryCopyFromParent
	IntrinsicAddress
	IntrinsicCaller
	IntrinsicCallValue
	IntrinsicKeccak256
	IntrinsicLog0
	IntrinsicLog1
	IntrinsicLog2
	IntrinsicLog3
	IntrinsicLog4
	IntrinsicCall
	IntrinsicCreate

	IntrinsicMemoryLoad
	IntrinsicMemoryStore
	IntrinsicMemoryStore8
	IntrinsicCalldataLoad
	IntrinsicCalldataCopy
	IntrinsicCodeCopy
	IntrinsicExtCodeCopy
	IntrinsicExtCodeSize
	IntrinsicExtCodeHash
	IntrinsicReturnDataCopy
	IntrinsicBalance
	IntrinsicBlockHash
	IntrinsicSelfDestruct
	IntrinsicCreate2
	IntrinsicDelegateCall
	IntrinsicStaticCall
	IntrinsicCallCode

	IntrinsicExp
	IntrinsicAddMod
	IntrinsicMulMod
	IntrinsicSignExtend
	IntrinsicByte
	IntrinsicDiv
	IntrinsicSDiv
	IntrinsicMod
	IntrinsicSMod
	IntrinsicShl
	IntrinsicShr
	IntrinsicSar
)

// ContextField selects which environment value IntrinsicGetFromContext
// returns (spec.md §4.F: chainid/origin/timestamp/etc. each read a
// single word out of the execution context).
type ContextField int

const (
	ContextFieldChainID ContextField = iota
	ContextFieldOrigin
	ContextFieldGasPrice
	ContextFieldGas
	ContextFieldTimestamp
	ContextFieldNumber
	ContextFieldCoinbase
	ContextFieldDifficulty
	ContextFieldGasLimit
	ContextFieldBaseFee
	ContextFieldSelfBalance
	ContextFieldMSize
	ContextFieldCodeSize
	ContextFieldCallDataSize
	ContextFieldReturnDataSize
)

func (f IntrinsicFunction) String() string {
	names := map[IntrinsicFunction]string{
		IntrinsicStorageLoad:            "__storage_load",
		IntrinsicStorageStore:           "__storage_store",
		IntrinsicTransientStorageLoad:   "__transient_storage_load",
		IntrinsicTransientStorageStore:  "__transient_storage_store",
		IntrinsicGetFromContext:         "__get_from_context",
		IntrinsicMemoryCopyFromChild:    "__memory_copy_from_child",
		IntrinsicMemoryCopyFromParent:   "__memory_copy_from_parent",
		IntrinsicAddress:                "__address",
		IntrinsicCaller:                 "__caller",
		IntrinsicCallValue:              "__callvalue",
		IntrinsicKeccak256:              "__keccak256",
		IntrinsicLog0:                   "__log0",
		IntrinsicLog1:                   "__log1",
		IntrinsicLog2:                   "__log2",
		IntrinsicLog3:                   "__log3",
		IntrinsicLog4:                   "__log4",
		IntrinsicCall:                   "__call",
		IntrinsicCreate:                 "__create",

		IntrinsicMemoryLoad:      "__mload",
		IntrinsicMemoryStore:     "__mstore",
		IntrinsicMemoryStore8:    "__mstore8",
		IntrinsicCalldataLoad:    "__calldataload",
		IntrinsicCalldataCopy:    "__calldatacopy",
		IntrinsicCodeCopy:        "__codecopy",
		IntrinsicExtCodeCopy:     "__extcodecopy",
		IntrinsicExtCodeSize:     "__extcodesize",
		IntrinsicExtCodeHash:     "__extcodehash",
		IntrinsicReturnDataCopy:  "__returndatacopy",
		IntrinsicBalance:         "__balance",
		IntrinsicBlockHash:       "__blockhash",
		IntrinsicSelfDestruct:    "__selfdestruct",
		IntrinsicCreate2:         "__create2",
		IntrinsicDelegateCall:    "__delegatecall",
		IntrinsicStaticCall:      "__staticcall",
		IntrinsicCallCode:        "__callcode",

		IntrinsicExp:         "__exp",
		IntrinsicAddMod:      "__addmod",
		IntrinsicMulMod:      "__mulmod",
		IntrinsicSignExtend:  "__signextend",
		IntrinsicByte:        "__byte",
		IntrinsicDiv:         "__div",
		IntrinsicSDiv:        "__sdiv",
		IntrinsicMod:         "__mod",
		IntrinsicSMod:        "__smod",
		IntrinsicShl:         "__shl",
		IntrinsicShr:         "__shr",
		IntrinsicSar:         "__sar",
	}
	if name, ok := names[f]; ok {
		return name
	}
	return fmt.Sprintf("__intrinsic_%d", int(f))
}

// intrinsicArity gives the parameter count declared for each
// intrinsic; every intrinsic returns a single field word (or void for
// the store/log/copy forms, represented here by a zero-word dummy
// return the writer discards).
var intrinsicArity = map[IntrinsicFunction]int{
	IntrinsicStorageLoad:           1, // key
	IntrinsicStorageStore:          2, // key, value
	IntrinsicTransientStorageLoad:  1,
	IntrinsicTransientStorageStore: 2,
	IntrinsicGetFromContext:        1,
	IntrinsicMemoryCopyFromChild:   3,
	IntrinsicMemoryCopyFromParent:  3,
	IntrinsicAddress:               0,
	IntrinsicCaller:                0,
	IntrinsicCallValue:             0,
	IntrinsicKeccak256:             2,
	IntrinsicLog0:                  2,
	IntrinsicLog1:                  3,
	IntrinsicLog2:                  4,
	IntrinsicLog3:                  5,
	IntrinsicLog4:                  6,
	IntrinsicCall:                  7,
	IntrinsicCreate:                3,

	IntrinsicMemoryLoad:     1,
	IntrinsicMemoryStore:    2,
	IntrinsicMemoryStore8:   2,
	IntrinsicCalldataLoad:   1,
	IntrinsicCalldataCopy:   3,
	IntrinsicCodeCopy:       3,
	IntrinsicExtCodeCopy:    4,
	IntrinsicExtCodeSize:    1,
	IntrinsicExtCodeHash:    1,
	IntrinsicReturnDataCopy: 3,
	IntrinsicBalance:        1,
	IntrinsicBlockHash:      1,
	IntrinsicSelfDestruct:   1,
	IntrinsicCreate2:        4,
	IntrinsicDelegateCall:   6,
	IntrinsicStaticCall:     6,
	IntrinsicCallCode:       7,

	IntrinsicExp:        2,
	IntrinsicAddMod:     3,
	IntrinsicMulMod:     3,
	IntrinsicSignExtend: 2,
	IntrinsicByte:       2,
	IntrinsicDiv:        2,
	IntrinsicSDiv:       2,
	IntrinsicMod:        2,
	IntrinsicSMod:       2,
	IntrinsicShl:        2,
	IntrinsicShr:        2,
	IntrinsicSar:        2,
}

// Intrinsic returns (declaring on first use) the LLVM function value
// for a symbolic intrinsic name, memoized via an LRU so repeated
// lookups across many emitted instructions don't re-declare it
// (spec.md §4.E: "creation is lazy and memoized").
func (c *Context) Intrinsic(name IntrinsicFunction) *ir.Func {
	if fn, ok := c.intrinsics[name]; ok {
		c.intrinsicLRU.Add(name, fn)
		return fn
	}
	if cached, ok := c.intrinsicLRU.Get(name); ok {
		fn := cached.(*ir.Func)
		c.intrinsics[name] = fn
		return fn
	}

	arity := intrinsicArity[name]
	params := make([]*ir.Param, arity)
	for i := range params {
		params[i] = ir.NewParam("", FieldType())
	}
	fn := c.Module.NewFunc(name.String(), FieldType(), params...)

	c.intrinsics[name] = fn
	c.intrinsicLRU.Add(name, fn)
	return fn
}

// VoidType is the return type DeclareFunction gives a function with
// no return values.
func VoidType() *types.VoidType {
	return types.Void
}

// GetFromContext emits a call reading one environment field (spec.md
// §4.F: chainid, origin, gasprice, timestamp, number, coinbase,
// difficulty, gaslimit, basefee, selfbalance, msize, codesize,
// calldatasize, returndatasize all share this one intrinsic,
// distinguished only by the field selector argument).
func (c *Context) GetFromContext(field ContextField) value.Value {
	fn := c.Intrinsic(IntrinsicGetFromContext)
	return c.Block().NewCall(fn, constant.NewInt(FieldType(), int64(field)))
}
