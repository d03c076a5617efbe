package llvmctx

import "github.com/llir/llvm/ir/value"

// StackPointer returns the i-th virtual-stack slot from the top
// (spec.md §4.E). ok is false if the stack isn't deep enough.
func (f *FunctionFrame) StackPointer(i int) (value.Value, bool) {
	idx := len(f.VirtualStack) - 1 - i
	if idx < 0 {
		return nil, false
	}
	return f.VirtualStack[idx], true
}

// StorePointer overwrites the i-th virtual-stack slot from the top.
func (f *FunctionFrame) StorePointer(i int, v value.Value) bool {
	idx := len(f.VirtualStack) - 1 - i
	if idx < 0 {
		return false
	}
	f.VirtualStack[idx] = v
	return true
}

// PushStack pushes a new value onto the virtual stack.
func (f *FunctionFrame) PushStack(v value.Value) {
	f.VirtualStack = append(f.VirtualStack, v)
}

// PopStack removes and returns the top virtual-stack value. ok is
// false on an empty stack.
func (f *FunctionFrame) PopStack() (value.Value, bool) {
	if len(f.VirtualStack) == 0 {
		return nil, false
	}
	v := f.VirtualStack[len(f.VirtualStack)-1]
	f.VirtualStack = f.VirtualStack[:len(f.VirtualStack)-1]
	return v, true
}

// DecreaseStackPointer drops the top n virtual-stack slots (used by
// POP and by any instruction that consumes operands without replacing
// them, per the EVM assembly's own bookkeeping).
func (f *FunctionFrame) DecreaseStackPointer(n int) {
	if n > len(f.VirtualStack) {
		n = len(f.VirtualStack)
	}
	f.VirtualStack = f.VirtualStack[:len(f.VirtualStack)-n]
}
