package llvmctx

import "errors"

// ErrUnresolvedLibrary is returned when a `linkersymbol` builtin
// references a "file:contract" pair absent from the LibraryMap
// (spec.md §4.E).
var ErrUnresolvedLibrary = errors.New("llvmctx: unresolved library placeholder")
