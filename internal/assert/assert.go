// Package assert guards internal invariants that can never be violated
// by untrusted input — as opposed to the error taxonomy in lexer,
// parser, evmasm, etherealir and llvmctx, which always returns a
// structured error for anything attacker- or author-controlled.
//
// This resolves the first Open Question of spec.md §9: source-language
// panics are lifted to the error taxonomy everywhere except here, where
// a violation means yulc itself has a bug, not that the input is bad.
package assert

import "fmt"

// Always panics if cond is false. Never called on a path reachable from
// untrusted input.
func Always(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
