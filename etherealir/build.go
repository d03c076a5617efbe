package etherealir

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/luxfi/yulc/evmasm"
)

// DefaultCloneLimit bounds the number of distinct (tag, hash) clones a
// single Build may produce before failing with CloneExplosionError
// (spec.md §4.D.6).
const DefaultCloneLimit = 65536

type queueElement struct {
	tag            int
	stack          Stack
	expectedReturn *int
}

// Build reconstructs a Function from a flat instruction vector by
// discovering raw tag-delimited blocks (§4.D.1) and then symbolically
// simulating the operand stack over a worklist, cloning a block
// whenever it is reached with a differently-shaped entry stack
// (§4.D.2-§4.D.4).
func Build(instrs []evmasm.Instruction, codeType CodeType, cloneLimit int) (*Function, error) {
	if cloneLimit <= 0 {
		cloneLimit = DefaultCloneLimit
	}
	raw, tagOrder := discoverRawBlocks(instrs)

	fn := &Function{EntryTag: 0, CodeType: codeType, Blocks: make(map[BlockKey]*Block, len(raw))}
	visited := mapset.NewThreadUnsafeSet[BlockKey]()
	queue := []queueElement{{tag: 0, stack: NewStack()}}

	for len(queue) > 0 {
		elem := queue[0]
		queue = queue[1:]

		hash := elem.stack.Hash()
		key := BlockKey{Tag: elem.tag, Hash: hash}
		if visited.Contains(key) {
			continue
		}
		if visited.Cardinality() >= cloneLimit {
			return nil, &CloneExplosionError{Limit: cloneLimit}
		}
		visited.Add(key)

		rb, ok := raw[elem.tag]
		if !ok {
			return nil, &UnresolvedTagError{Tag: elem.tag}
		}

		block := &Block{Tag: elem.tag, EntryStack: elem.stack.Clone()}
		stack := elem.stack.Clone()
		resolved := false

		for i, instr := range rb.Instructions {
			switch instr.Kind {
			case evmasm.KindPushTag:
				stack.Push(TagElement(instr.Tag))

			case evmasm.KindPush, evmasm.KindPushImmutable:
				stack.Push(Value())

			case evmasm.KindAssignImmutable:
				if _, ok := stack.Pop(); !ok {
					return nil, &StackUnderflowError{Tag: elem.tag, Expected: 1, Found: 0}
				}

			case evmasm.KindDup:
				if !stack.Dup(instr.Index) {
					return nil, &StackUnderflowError{Tag: elem.tag, Expected: instr.Index, Found: len(stack.Elements)}
				}

			case evmasm.KindSwap:
				if !stack.Swap(instr.Index) {
					return nil, &StackUnderflowError{Tag: elem.tag, Expected: instr.Index + 1, Found: len(stack.Elements)}
				}

			case evmasm.KindPop:
				if _, ok := stack.Pop(); !ok {
					return nil, &StackUnderflowError{Tag: elem.tag, Expected: 1, Found: 0}
				}

			case evmasm.KindCodeCopy:
				for n := 0; n < 3; n++ {
					if _, ok := stack.Pop(); !ok {
						return nil, &StackUnderflowError{Tag: elem.tag, Expected: 3, Found: n}
					}
				}

			case evmasm.KindGeneric:
				arity, ok := evmasm.Lookup(instr.Name)
				if !ok {
					return nil, fmt.Errorf("%w: %s", evmasm.ErrUnrecognizedOpcode, instr.Name)
				}
				for n := 0; n < arity.Pops; n++ {
					if _, ok := stack.Pop(); !ok {
						return nil, &StackUnderflowError{Tag: elem.tag, Expected: arity.Pops, Found: n}
					}
				}
				for n := 0; n < arity.Pushes; n++ {
					stack.Push(Value())
				}

			case evmasm.KindJump:
				below, hasBelow := stack.Peek(1)
				destTag, err := stack.PopTag()
				if err != nil {
					return nil, err
				}

				switch {
				case hasBelow && below.Kind == ElementTag:
					// 0-argument call shape only: the return tag sits
					// immediately below the callee tag with no
					// arguments between them. Calls with arguments
					// are not structurally distinguished from a plain
					// jump by this heuristic (see DESIGN.md).
					returnTag := below.Tag
					block.Exit = Exit{Kind: ExitCall, Callee: destTag}
					enqueue(&queue, block, destTag, stack, &returnTag)

					continuation := stack.Clone()
					continuation.Pop()
					enqueue(&queue, block, returnTag, continuation, elem.expectedReturn)
				case elem.expectedReturn != nil && destTag == *elem.expectedReturn:
					block.Exit = Exit{Kind: ExitReturn}
				default:
					block.Exit = Exit{Kind: ExitUnconditional}
					enqueue(&queue, block, destTag, stack, elem.expectedReturn)
				}
				resolved = true

			case evmasm.KindJumpI:
				destTag, err := stack.PopTag()
				if err != nil {
					return nil, err
				}
				if _, ok := stack.Pop(); !ok {
					return nil, &StackUnderflowError{Tag: elem.tag, Expected: 2, Found: 0}
				}
				elseTag, ok := nextTag(tagOrder, elem.tag)
				if !ok {
					return nil, &UnresolvedTagError{Tag: elem.tag}
				}
				block.Exit = Exit{Kind: ExitFallthrough, Destination: elseTag}
				enqueue(&queue, block, destTag, stack, elem.expectedReturn)
				enqueue(&queue, block, elseTag, stack, elem.expectedReturn)
				resolved = true

			case evmasm.KindTerminator:
				block.Exit = Exit{Kind: ExitReturn}
				resolved = true
			}

			if resolved {
				block.Instructions = rb.Instructions[:i+1]
				break
			}
		}

		if !resolved {
			block.Instructions = rb.Instructions
			target, ok := nextTag(tagOrder, elem.tag)
			if !ok {
				return nil, &UnresolvedTagError{Tag: elem.tag}
			}
			block.Exit = Exit{Kind: ExitFallthrough, Destination: target}
			enqueue(&queue, block, target, stack, elem.expectedReturn)
		}

		fn.Blocks[key] = block
	}

	return fn, nil
}

// enqueue records a successor edge on block and schedules it for
// simulation with an independent copy of the stack.
func enqueue(queue *[]queueElement, block *Block, tag int, stack Stack, expectedReturn *int) {
	next := stack.Clone()
	block.Successors = append(block.Successors, BlockKey{Tag: tag, Hash: next.Hash()})
	*queue = append(*queue, queueElement{tag: tag, stack: next, expectedReturn: expectedReturn})
}
