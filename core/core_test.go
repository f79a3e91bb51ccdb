package core_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfzk/core"
	"github.com/sarchlab/bfzk/program"
)

var _ = Describe("Core", func() {
	var (
		engine sim.Engine
		c      *core.Core
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		c = core.NewBuilder().
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			WithMemorySize(64).
			Build("Core")
	})

	It("should report that no program is mapped", func() {
		Expect(errors.Is(c.Err(), core.ErrNoProgram)).To(BeTrue())
	})

	It("should match the interpreter on nested loops", func() {
		p := program.Load(helloWorld)
		Expect(c.MapProgram(p, nil, nil)).To(Succeed())
		Expect(engine.Run()).To(Succeed())

		expected, err := core.Run(p, nil, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(c.Err()).NotTo(HaveOccurred())
		Expect(c.Halted()).To(BeTrue())
		Expect(c.Result().Output).To(Equal(expected.Output))
		Expect(c.Result().Steps).To(Equal(expected.Steps))
		Expect(c.HaltTime()).To(BeNumerically(">", 0))
	})

	It("should consume inputs", func() {
		in := program.NewInputs(3)
		Expect(c.MapProgram(program.Load(",[-.]"), nil, in)).To(Succeed())
		Expect(engine.Run()).To(Succeed())

		Expect(c.Result().Output).To(Equal([]byte{2, 1, 0}))
		Expect(in.Len()).To(BeZero())
	})

	It("should stop on a memory fault", func() {
		Expect(c.MapProgram(program.Load("<+"), nil, nil)).To(Succeed())
		Expect(engine.Run()).To(Succeed())

		Expect(errors.Is(c.Err(), core.ErrMemoryBounds)).To(BeTrue())
		Expect(c.Halted()).To(BeFalse())
	})

	It("should refuse an unbalanced program", func() {
		err := c.MapProgram(program.Load("[["), nil, nil)
		Expect(errors.Is(err, program.ErrUnmatchedBracket)).To(BeTrue())
	})

	It("should honor the step limit", func() {
		c = core.NewBuilder().
			WithEngine(engine).
			WithMaxSteps(10).
			Build("LimitedCore")

		Expect(c.MapProgram(program.Load("+[]"), nil, nil)).To(Succeed())
		Expect(engine.Run()).To(Succeed())

		Expect(errors.Is(c.Err(), core.ErrStepLimit)).To(BeTrue())
		Expect(c.Result().Steps).To(Equal(uint64(10)))
	})
})
