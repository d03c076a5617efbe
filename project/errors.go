package project

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when resolving a contract identifier the
// Project was never given a source for.
var ErrNotFound = errors.New("project: contract not found")

// CyclicDependencyError reports the chain of contract identifiers that
// closes a dependency cycle, detected by walking the resolving
// worker's own in-progress stack (spec.md §5 "Cyclic dependency
// between contracts").
type CyclicDependencyError struct {
	Chain []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("project: cyclic dependency: %s", strings.Join(e.Chain, " -> "))
}

// SubcompileError wraps a dependency's failure as seen by the contract
// that depends on it (spec.md §7 "Dependency: subcompile-failed (wraps
// an inner error)").
type SubcompileError struct {
	Dependency string
	Err        error
}

func (e *SubcompileError) Error() string {
	return fmt.Sprintf("project: dependency %s failed to compile: %v", e.Dependency, e.Err)
}

func (e *SubcompileError) Unwrap() error { return e.Err }
