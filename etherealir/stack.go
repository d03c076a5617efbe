// Package etherealir reconstructs a structured, function-shaped
// control-flow graph from a flat EVM instruction stream, grounded on
// original_source/src/evm/ethereal_ir/* and spec.md §4.D. EVM bytecode
// has no function boundaries; this package recovers them by
// symbolically simulating the operand stack and cloning blocks
// whenever their entry stack shape differs.
package etherealir

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"

	"github.com/VictoriaMetrics/fastcache"
)

// ElementKind tags a SymbolicStackElement (spec.md §3).
type ElementKind int

const (
	// ElementValue is a runtime-unknown value; all Values are equal to
	// each other for hashing purposes.
	ElementValue ElementKind = iota
	// ElementTag is a compile-time-known jump destination label.
	ElementTag
)

// Element is one SymbolicStackElement.
type Element struct {
	Kind ElementKind
	Tag  int
}

// Value constructs a runtime-unknown stack element.
func Value() Element { return Element{Kind: ElementValue} }

// TagElement constructs a compile-time jump-destination element.
func TagElement(tag int) Element { return Element{Kind: ElementTag, Tag: tag} }

func (e Element) String() string {
	if e.Kind == ElementTag {
		return fmt.Sprintf("T_%d", e.Tag)
	}
	return "VALUE"
}

// digestCache memoizes the stack-digest preimage -> MD5 digest mapping
// so re-visiting the same entry-stack shape (common across many
// callers and loop back-edges) doesn't re-hash it from scratch.
var digestCache = fastcache.New(16 * 1024 * 1024)

// Stack is the SymbolicStack of spec.md §3: an ordered sequence of
// Elements with a deterministic hash that identifies a block clone.
type Stack struct {
	Elements []Element
}

// NewStack returns an empty stack, as used at a function's entry tag.
func NewStack() Stack {
	return Stack{}
}

// Clone returns an independent copy so concurrent worklist branches
// don't alias each other's slices.
func (s Stack) Clone() Stack {
	elems := make([]Element, len(s.Elements))
	copy(elems, s.Elements)
	return Stack{Elements: elems}
}

// Hash computes the MD5-style digest of spec.md §3: tag positions are
// salted by their numeric tag, non-tag positions contribute a fixed
// zero byte.
func (s Stack) Hash() [16]byte {
	key := make([]byte, 0, len(s.Elements)*8)
	for _, e := range s.Elements {
		if e.Kind == ElementTag {
			var buf [8]byte
			binary.LittleEndian.PutUint64(buf[:], uint64(e.Tag))
			key = append(key, buf[:]...)
		} else {
			key = append(key, 0)
		}
	}

	if cached := digestCache.Get(nil, key); len(cached) == md5.Size {
		var digest [16]byte
		copy(digest[:], cached)
		return digest
	}
	digest := md5.Sum(key)
	digestCache.Set(key, digest[:])
	return digest
}

// Push appends an element to the top of the stack.
func (s *Stack) Push(e Element) {
	s.Elements = append(s.Elements, e)
}

// Pop removes and returns the top element. ok is false on an empty
// stack.
func (s *Stack) Pop() (Element, bool) {
	if len(s.Elements) == 0 {
		return Element{}, false
	}
	top := s.Elements[len(s.Elements)-1]
	s.Elements = s.Elements[:len(s.Elements)-1]
	return top, true
}

// Peek returns the element `depth` slots from the top without
// removing it (depth 0 is the top). ok is false if the stack is too
// shallow.
func (s Stack) Peek(depth int) (Element, bool) {
	idx := len(s.Elements) - 1 - depth
	if idx < 0 {
		return Element{}, false
	}
	return s.Elements[idx], true
}

// PopTag pops the top element and requires it to be a Tag, for
// JUMP/JUMPI destination resolution (spec.md §4.D.2).
func (s *Stack) PopTag() (int, error) {
	top, ok := s.Pop()
	if !ok || top.Kind != ElementTag {
		return 0, ErrDynamicJump
	}
	return top.Tag, nil
}

// Swap exchanges the top element with the element `index` slots below
// it (SWAP_index, spec.md §4.D.2). ok is false if the stack is too
// shallow.
func (s *Stack) Swap(index int) bool {
	n := len(s.Elements)
	if index < 1 || n-1-index < 0 {
		return false
	}
	s.Elements[n-1], s.Elements[n-1-index] = s.Elements[n-1-index], s.Elements[n-1]
	return true
}

// Dup duplicates the element `index` slots from the top (DUP_index,
// 1-based, spec.md §4.D.2). ok is false if the stack is too shallow.
func (s *Stack) Dup(index int) bool {
	n := len(s.Elements)
	if index < 1 || n-index < 0 {
		return false
	}
	s.Push(s.Elements[n-index])
	return true
}

func (s Stack) String() string {
	out := "[ "
	for i, e := range s.Elements {
		if i > 0 {
			out += " | "
		}
		out += e.String()
	}
	return out + " ]"
}
