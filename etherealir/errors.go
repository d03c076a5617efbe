package etherealir

import (
	"errors"
	"fmt"
)

// ErrDynamicJump is returned when a JUMP/JUMPI destination resolves to
// a runtime Value instead of a compile-time Tag (spec.md §4.D.6).
var ErrDynamicJump = errors.New("etherealir: dynamic jump target")

// StackUnderflowError reports an instruction that needed more operands
// than the symbolic stack had (spec.md §4.D.6).
type StackUnderflowError struct {
	Tag      int
	Expected int
	Found    int
}

func (e *StackUnderflowError) Error() string {
	return fmt.Sprintf("etherealir: tag %d: stack underflow (expected %d, found %d)", e.Tag, e.Expected, e.Found)
}

// CloneExplosionError reports that the number of distinct (tag, hash)
// block clones exceeded the configured bound (spec.md §4.D.6).
type CloneExplosionError struct {
	Limit int
}

func (e *CloneExplosionError) Error() string {
	return fmt.Sprintf("etherealir: clone limit of %d distinct block clones exceeded", e.Limit)
}

// UnresolvedTagError reports a jump or fallthrough into a tag that was
// never discovered as a block (malformed or truncated assembly).
type UnresolvedTagError struct {
	Tag int
}

func (e *UnresolvedTagError) Error() string {
	return fmt.Sprintf("etherealir: no block discovered for tag %d", e.Tag)
}
