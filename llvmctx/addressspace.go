package llvmctx

// AddressSpace enumerates the four memory regions Ethereal IR
// emission addresses (spec.md §4.E).
type AddressSpace int

const (
	AddressSpaceStack AddressSpace = iota
	AddressSpaceHeap
	AddressSpaceParent
	AddressSpaceChild
)

func (a AddressSpace) String() string {
	switch a {
	case AddressSpaceStack:
		return "stack"
	case AddressSpaceHeap:
		return "heap"
	case AddressSpaceParent:
		return "parent"
	case AddressSpaceChild:
		return "child"
	default:
		return "<unknown address space>"
	}
}
