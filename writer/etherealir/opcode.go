package etherealir

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/value"

	"github.com/luxfi/yulc/llvmctx"
)

// opcodeEmitter lowers one generic opcode's already-popped operands
// (in pop order: args[0] is the value that was on top of the stack)
// into LLVM instructions, returning the values to push back, in the
// order the opcode pushes them.
type opcodeEmitter func(ctx *llvmctx.Context, args []value.Value) []value.Value

func alu(f func(b *ir.Block, args []value.Value) value.Value) opcodeEmitter {
	return func(ctx *llvmctx.Context, args []value.Value) []value.Value {
		return []value.Value{f(ctx.Block(), args)}
	}
}

func cmp(pred enum.IPred) opcodeEmitter {
	return alu(func(b *ir.Block, args []value.Value) value.Value {
		bit := b.NewICmp(pred, args[0], args[1])
		return b.NewZExt(bit, llvmctx.FieldType())
	})
}

func intrinsicOp(name llvmctx.IntrinsicFunction, pushes int) opcodeEmitter {
	return func(ctx *llvmctx.Context, args []value.Value) []value.Value {
		call := ctx.Block().NewCall(ctx.Intrinsic(name), args...)
		if pushes == 0 {
			return nil
		}
		return []value.Value{call}
	}
}

func contextFieldOp(field llvmctx.ContextField) opcodeEmitter {
	return func(ctx *llvmctx.Context, args []value.Value) []value.Value {
		return []value.Value{ctx.GetFromContext(field)}
	}
}

// opcodes maps every evmasm.KindGeneric / KindTerminator mnemonic this
// writer knows how to lower to its (pops, pushes, emitter) triple;
// pops/pushes mirror evmasm's arity table exactly so block replay and
// symbolic simulation never disagree (spec.md §4.D.2, §4.F).
var opcodes = map[string]struct {
	pops, pushes int
	emit         opcodeEmitter
}{
	"ADD": {2, 1, alu(func(b *ir.Block, a []value.Value) value.Value { return b.NewAdd(a[0], a[1]) })},
	"SUB": {2, 1, alu(func(b *ir.Block, a []value.Value) value.Value { return b.NewSub(a[0], a[1]) })},
	"MUL": {2, 1, alu(func(b *ir.Block, a []value.Value) value.Value { return b.NewMul(a[0], a[1]) })},
	"AND": {2, 1, alu(func(b *ir.Block, a []value.Value) value.Value { return b.NewAnd(a[0], a[1]) })},
	"OR":  {2, 1, alu(func(b *ir.Block, a []value.Value) value.Value { return b.NewOr(a[0], a[1]) })},
	"XOR": {2, 1, alu(func(b *ir.Block, a []value.Value) value.Value { return b.NewXor(a[0], a[1]) })},
	"NOT": {1, 1, alu(func(b *ir.Block, a []value.Value) value.Value {
		return b.NewXor(a[0], constant.NewInt(llvmctx.FieldType(), -1))
	})},

	"LT":     {2, 1, cmp(enum.IPredULT)},
	"GT":     {2, 1, cmp(enum.IPredUGT)},
	"SLT":    {2, 1, cmp(enum.IPredSLT)},
	"SGT":    {2, 1, cmp(enum.IPredSGT)},
	"EQ":     {2, 1, cmp(enum.IPredEQ)},
	"ISZERO": {1, 1, alu(func(b *ir.Block, a []value.Value) value.Value {
		bit := b.NewICmp(enum.IPredEQ, a[0], constant.NewInt(llvmctx.FieldType(), 0))
		return b.NewZExt(bit, llvmctx.FieldType())
	})},

	"DIV":        {2, 1, intrinsicOp(llvmctx.IntrinsicDiv, 1)},
	"SDIV":       {2, 1, intrinsicOp(llvmctx.IntrinsicSDiv, 1)},
	"MOD":        {2, 1, intrinsicOp(llvmctx.IntrinsicMod, 1)},
	"SMOD":       {2, 1, intrinsicOp(llvmctx.IntrinsicSMod, 1)},
	"EXP":        {2, 1, intrinsicOp(llvmctx.IntrinsicExp, 1)},
	"ADDMOD":     {3, 1, intrinsicOp(llvmctx.IntrinsicAddMod, 1)},
	"MULMOD":     {3, 1, intrinsicOp(llvmctx.IntrinsicMulMod, 1)},
	"SIGNEXTEND": {2, 1, intrinsicOp(llvmctx.IntrinsicSignExtend, 1)},
	"BYTE":       {2, 1, intrinsicOp(llvmctx.IntrinsicByte, 1)},
	"SHL":        {2, 1, intrinsicOp(llvmctx.IntrinsicShl, 1)},
	"SHR":        {2, 1, intrinsicOp(llvmctx.IntrinsicShr, 1)},
	"SAR":        {2, 1, intrinsicOp(llvmctx.IntrinsicSar, 1)},
	"KECCAK256":  {2, 1, intrinsicOp(llvmctx.IntrinsicKeccak256, 1)},

	"MLOAD":   {1, 1, intrinsicOp(llvmctx.IntrinsicMemoryLoad, 1)},
	"MSTORE":  {2, 0, intrinsicOp(llvmctx.IntrinsicMemoryStore, 0)},
	"MSTORE8": {2, 0, intrinsicOp(llvmctx.IntrinsicMemoryStore8, 0)},
	"MSIZE":   {0, 1, contextFieldOp(llvmctx.ContextFieldMSize)},

	"SLOAD":  {1, 1, intrinsicOp(llvmctx.IntrinsicStorageLoad, 1)},
	"SSTORE": {2, 0, intrinsicOp(llvmctx.IntrinsicStorageStore, 0)},
	"TLOAD":  {1, 1, intrinsicOp(llvmctx.IntrinsicTransientStorageLoad, 1)},
	"TSTORE": {2, 0, intrinsicOp(llvmctx.IntrinsicTransientStorageStore, 0)},

	"ADDRESS":         {0, 1, intrinsicOp(llvmctx.IntrinsicAddress, 1)},
	"CALLER":          {0, 1, intrinsicOp(llvmctx.IntrinsicCaller, 1)},
	"CALLVALUE":       {0, 1, intrinsicOp(llvmctx.IntrinsicCallValue, 1)},
	"CALLDATALOAD":    {1, 1, intrinsicOp(llvmctx.IntrinsicCalldataLoad, 1)},
	"CALLDATASIZE":    {0, 1, contextFieldOp(llvmctx.ContextFieldCallDataSize)},
	"CALLDATACOPY":    {3, 0, intrinsicOp(llvmctx.IntrinsicCalldataCopy, 0)},
	"CODESIZE":        {0, 1, contextFieldOp(llvmctx.ContextFieldCodeSize)},
	"GASPRICE":        {0, 1, contextFieldOp(llvmctx.ContextFieldGasPrice)},
	"EXTCODESIZE":     {1, 1, intrinsicOp(llvmctx.IntrinsicExtCodeSize, 1)},
	"EXTCODECOPY":     {4, 0, intrinsicOp(llvmctx.IntrinsicExtCodeCopy, 0)},
	"EXTCODEHASH":     {1, 1, intrinsicOp(llvmctx.IntrinsicExtCodeHash, 1)},
	"RETURNDATASIZE":  {0, 1, contextFieldOp(llvmctx.ContextFieldReturnDataSize)},
	"RETURNDATACOPY":  {3, 0, intrinsicOp(llvmctx.IntrinsicReturnDataCopy, 0)},
	"BALANCE":         {1, 1, intrinsicOp(llvmctx.IntrinsicBalance, 1)},
	"SELFBALANCE":     {0, 1, contextFieldOp(llvmctx.ContextFieldSelfBalance)},
	"BLOCKHASH":       {1, 1, intrinsicOp(llvmctx.IntrinsicBlockHash, 1)},

	"CHAINID":     {0, 1, contextFieldOp(llvmctx.ContextFieldChainID)},
	"ORIGIN":      {0, 1, contextFieldOp(llvmctx.ContextFieldOrigin)},
	"GAS":         {0, 1, contextFieldOp(llvmctx.ContextFieldGas)},
	"TIMESTAMP":   {0, 1, contextFieldOp(llvmctx.ContextFieldTimestamp)},
	"NUMBER":      {0, 1, contextFieldOp(llvmctx.ContextFieldNumber)},
	"COINBASE":    {0, 1, contextFieldOp(llvmctx.ContextFieldCoinbase)},
	"DIFFICULTY":  {0, 1, contextFieldOp(llvmctx.ContextFieldDifficulty)},
	"PREVRANDAO":  {0, 1, contextFieldOp(llvmctx.ContextFieldDifficulty)},
	"GASLIMIT":    {0, 1, contextFieldOp(llvmctx.ContextFieldGasLimit)},
	"BASEFEE":     {0, 1, contextFieldOp(llvmctx.ContextFieldBaseFee)},

	"LOG0": {2, 0, intrinsicOp(llvmctx.IntrinsicLog0, 0)},
	"LOG1": {3, 0, intrinsicOp(llvmctx.IntrinsicLog1, 0)},
	"LOG2": {4, 0, intrinsicOp(llvmctx.IntrinsicLog2, 0)},
	"LOG3": {5, 0, intrinsicOp(llvmctx.IntrinsicLog3, 0)},
	"LOG4": {6, 0, intrinsicOp(llvmctx.IntrinsicLog4, 0)},

	"CREATE":       {3, 1, intrinsicOp(llvmctx.IntrinsicCreate, 1)},
	"CREATE2":      {4, 1, intrinsicOp(llvmctx.IntrinsicCreate2, 1)},
	"CALL":         {7, 1, intrinsicOp(llvmctx.IntrinsicCall, 1)},
	"CALLCODE":     {7, 1, intrinsicOp(llvmctx.IntrinsicCallCode, 1)},
	"DELEGATECALL": {6, 1, intrinsicOp(llvmctx.IntrinsicDelegateCall, 1)},
	"STATICCALL":   {6, 1, intrinsicOp(llvmctx.IntrinsicStaticCall, 1)},
}
