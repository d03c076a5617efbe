package etherealir

import "fmt"

// Finalize computes reverse-postorder block numbering from the
// function's entry, assigns each block a stable LLVM name of the form
// `tag_<N>_<hex-digest>`, and drops anything Build didn't actually
// reach (spec.md §4.D.5). It mutates fn in place and also returns it.
func (fn *Function) Finalize() *Function {
	entryKey := BlockKey{Tag: fn.EntryTag, Hash: NewStack().Hash()}

	var postorder []BlockKey
	visited := make(map[BlockKey]bool, len(fn.Blocks))
	var visit func(key BlockKey)
	visit = func(key BlockKey) {
		if visited[key] {
			return
		}
		visited[key] = true
		block, ok := fn.Blocks[key]
		if !ok {
			return
		}
		for _, succ := range block.Successors {
			visit(succ)
		}
		postorder = append(postorder, key)
	}
	visit(entryKey)

	reachable := make(map[BlockKey]*Block, len(postorder))
	for _, key := range postorder {
		reachable[key] = fn.Blocks[key]
	}
	fn.Blocks = reachable

	order := make([]BlockKey, len(postorder))
	for i, key := range postorder {
		reverseIndex := len(postorder) - 1 - i
		order[reverseIndex] = key
		block := fn.Blocks[key]
		block.Order = reverseIndex
		block.Name = fmt.Sprintf("tag_%d_%x", key.Tag, key.Hash)
	}
	fn.Order = order

	return fn
}
