package etherealir_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/luxfi/yulc/etherealir"
	"github.com/luxfi/yulc/evmasm"
)

func TestDiscoverySuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "etherealir block discovery suite")
}

var _ = Describe("block finalization", func() {
	It("numbers reachable blocks in reverse postorder and drops dead ones", func() {
		instrs := []evmasm.Instruction{
			pushTag(1), jump,
			tagInstr(1), stop,
			tagInstr(2), stop, // never jumped to: unreachable, dropped by Finalize
		}

		ir, err := etherealir.TryFromInstructions(instrs, etherealir.CodeTypeRuntime, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(ir.Function.Blocks).To(HaveLen(2))
		Expect(ir.Function.Order).To(HaveLen(2))

		for _, key := range ir.Function.Order {
			block := ir.Function.Blocks[key]
			Expect(block.Name).To(MatchRegexp(`^tag_\d+_[0-9a-f]{32}$`))
		}
	})

	It("assigns distinct clones to the same tag under different entry stacks", func() {
		// tag1 is reached twice with different entry stacks via two
		// distinct callers, each pushing a different return tag.
		instrs := []evmasm.Instruction{
			pushTag(9), pushTag(1), jump,
			tagInstr(1), jump,
			tagInstr(9), pushTag(8), pushTag(1), jump,
			tagInstr(8), stop,
		}

		ir, err := etherealir.TryFromInstructions(instrs, etherealir.CodeTypeRuntime, 0)
		Expect(err).NotTo(HaveOccurred())

		clonesOfTag1 := 0
		for _, block := range ir.Function.Blocks {
			if block.Tag == 1 {
				clonesOfTag1++
			}
		}
		Expect(clonesOfTag1).To(Equal(2))
	})
})
