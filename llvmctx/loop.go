package llvmctx

import "github.com/llir/llvm/ir"

// LoopFrame carries the targets for `break`/`continue` inside one
// nested for-loop (spec.md §3).
type LoopFrame struct {
	BodyBlock     *ir.Block
	ContinueBlock *ir.Block
	BreakBlock    *ir.Block
}

// LoopStack is a LIFO stack of LoopFrame, one entry per currently open
// for-loop (spec.md §4.E).
type LoopStack []LoopFrame

// Push opens a new loop scope.
func (s *LoopStack) Push(frame LoopFrame) {
	*s = append(*s, frame)
}

// Pop closes the innermost loop scope.
func (s *LoopStack) Pop() {
	if len(*s) == 0 {
		return
	}
	*s = (*s)[:len(*s)-1]
}

// Top returns the innermost loop scope. ok is false outside any loop.
func (s LoopStack) Top() (LoopFrame, bool) {
	if len(s) == 0 {
		return LoopFrame{}, false
	}
	return s[len(s)-1], true
}
