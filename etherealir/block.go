package etherealir

import "github.com/luxfi/yulc/evmasm"

// CodeType distinguishes the deploy and runtime halves of a compiled
// object (spec.md §3 "Function: code_type").
type CodeType int

const (
	CodeTypeDeploy CodeType = iota
	CodeTypeRuntime
)

func (c CodeType) String() string {
	if c == CodeTypeDeploy {
		return "deploy"
	}
	return "runtime"
}

// BlockKey identifies one block clone: the same tag visited with a
// different entry-stack shape produces a distinct key (spec.md
// §4.D.3).
type BlockKey struct {
	Tag  int
	Hash [16]byte
}

// Block is one reconstructed basic block: a specific clone of a tag,
// keyed by its entry stack shape (spec.md §3).
type Block struct {
	Tag          int
	EntryStack   Stack
	Instructions []evmasm.Instruction
	Exit         Exit
	Successors   []BlockKey

	// Name and Order are assigned by Finalize: a stable LLVM block
	// name (`tag_<N>_<hex-digest>`) and a reverse-postorder index for
	// deterministic emission (spec.md §4.D.5).
	Name  string
	Order int
}

// Key returns this block's identity in its owning Function's map.
func (b *Block) Key() BlockKey {
	return BlockKey{Tag: b.Tag, Hash: b.EntryStack.Hash()}
}

// rawBlock is one tag-delimited segment of the instruction stream
// before symbolic simulation and cloning (spec.md §4.D.1). The tag
// directive itself is stripped; Instructions holds only what runs
// after it.
type rawBlock struct {
	Tag          int
	Instructions []evmasm.Instruction
}

// discoverRawBlocks scans the instruction vector left-to-right,
// opening a new segment at every `tag N` directive. The entry segment
// (tag 0) is implicit when the stream doesn't open with an explicit
// tag. tagOrder preserves the lexical order tags were discovered in,
// used to resolve JUMPI/fallthrough successors that have no explicit
// jump (spec.md §4.D.1).
func discoverRawBlocks(instrs []evmasm.Instruction) (map[int]rawBlock, []int) {
	blocks := make(map[int]rawBlock, 64)
	var tagOrder []int

	currentTag := 0
	var current []evmasm.Instruction
	seenAny := false

	flush := func() {
		blocks[currentTag] = rawBlock{Tag: currentTag, Instructions: current}
		tagOrder = append(tagOrder, currentTag)
	}

	for _, instr := range instrs {
		if instr.Kind == evmasm.KindTag {
			if seenAny {
				flush()
			}
			currentTag = instr.Tag
			current = nil
			seenAny = true
			continue
		}
		current = append(current, instr)
		seenAny = true
	}
	flush()
	return blocks, tagOrder
}

// nextTag returns the tag immediately following `tag` in discovery
// order, for resolving implicit fallthrough (spec.md §4.D.1).
func nextTag(tagOrder []int, tag int) (int, bool) {
	for i, t := range tagOrder {
		if t == tag {
			if i+1 < len(tagOrder) {
				return tagOrder[i+1], true
			}
			return 0, false
		}
	}
	return 0, false
}
