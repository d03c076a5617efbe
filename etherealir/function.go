package etherealir

// Function is the all-inlined reconstruction of spec.md §3: a single
// synthetic entry (tag 0) plus every discovered inner block clone.
type Function struct {
	EntryTag int
	CodeType CodeType
	Blocks   map[BlockKey]*Block

	// Order lists block keys in reverse-postorder, assigned by
	// Finalize for deterministic LLVM emission (spec.md §4.D.5).
	Order []BlockKey
}

// Entry returns the function's unique entry block.
func (f *Function) Entry() *Block {
	return f.Blocks[BlockKey{Tag: f.EntryTag, Hash: NewStack().Hash()}]
}
