package llvmctx

import (
	"errors"
	"fmt"
	"sync"

	"github.com/luxfi/geth/crypto"

	"github.com/luxfi/yulc/parser"
)

// ErrUnresolvedDependency is returned when a factory-dependency
// identifier has no entry in the DependencyRegistry.
var ErrUnresolvedDependency = errors.New("llvmctx: unresolved factory dependency")

// DependencyKind tags a DependencyEntry (spec.md §3).
type DependencyKind int

const (
	DependencyParsed DependencyKind = iota
	DependencyCompiled
)

// DependencyEntry is one DependencyRegistry slot: either a parsed
// object awaiting compilation, or already-compiled bytecode.
type DependencyEntry struct {
	Kind     DependencyKind
	Object   *parser.Object // valid when Kind == DependencyParsed
	Bytecode []byte         // valid when Kind == DependencyCompiled
}

// DependencyRegistry maps an object identifier to its compile state,
// lazily compiling Parsed entries on first reference and memoizing
// the result (spec.md §3, §4.E "dependency resolver").
type DependencyRegistry struct {
	mu      sync.Mutex
	entries map[string]*DependencyEntry
	compile func(*parser.Object) ([]byte, error)
}

// NewDependencyRegistry constructs a registry. compile performs the
// actual lex/parse/IR/LLVM pipeline for a dependency's Object; it is
// injected so this package doesn't import the top-level driver.
func NewDependencyRegistry(compile func(*parser.Object) ([]byte, error)) *DependencyRegistry {
	return &DependencyRegistry{entries: make(map[string]*DependencyEntry), compile: compile}
}

// Register adds a parsed (not yet compiled) dependency.
func (r *DependencyRegistry) Register(name string, obj *parser.Object) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = &DependencyEntry{Kind: DependencyParsed, Object: obj}
}

// ContentHash resolves name to its 32-byte keccak256 content address,
// compiling it on demand if it is still Parsed (spec.md §4.E).
func (r *DependencyRegistry) ContentHash(name string) ([32]byte, error) {
	r.mu.Lock()
	entry, ok := r.entries[name]
	r.mu.Unlock()
	if !ok {
		return [32]byte{}, fmt.Errorf("%w: %s", ErrUnresolvedDependency, name)
	}

	if entry.Kind == DependencyParsed {
		bytecode, err := r.compile(entry.Object)
		if err != nil {
			return [32]byte{}, err
		}
		r.mu.Lock()
		entry.Kind = DependencyCompiled
		entry.Bytecode = bytecode
		entry.Object = nil
		r.mu.Unlock()
	}

	return crypto.Keccak256Hash(entry.Bytecode), nil
}
