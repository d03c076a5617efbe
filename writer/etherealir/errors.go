package etherealir

import (
	"errors"
	"fmt"
)

// ErrUnhandledOpcode is returned when a generic instruction's name has
// no registered opcode emitter, even though evmasm's arity table
// accepted it — a gap in this writer, not in decoding.
var ErrUnhandledOpcode = errors.New("ethereal-ir writer: unhandled opcode")

// ErrMissingBlock is returned when an Exit references a successor
// BlockKey the Function's Finalize pass didn't retain.
type ErrMissingBlock struct {
	Tag int
}

func (e *ErrMissingBlock) Error() string {
	return fmt.Sprintf("ethereal-ir writer: no LLVM block for tag %d", e.Tag)
}
