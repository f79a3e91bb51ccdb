package program_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bfzk/program"
)

var _ = Describe("Resolve", func() {
	It("should match brackets in both directions", func() {
		p := program.Load("+[>[-]<]")
		jt, err := program.Resolve(p)

		Expect(err).NotTo(HaveOccurred())

		m, ok := jt.Match(1)
		Expect(ok).To(BeTrue())
		Expect(m).To(Equal(7))

		m, ok = jt.Match(7)
		Expect(ok).To(BeTrue())
		Expect(m).To(Equal(1))

		m, ok = jt.Match(3)
		Expect(ok).To(BeTrue())
		Expect(m).To(Equal(5))

		Expect(jt.Pairs()).To(Equal(2))
		Expect(jt.Depth()).To(Equal(2))
		Expect(jt.Covers(p)).To(BeTrue())
	})

	It("should not match non-bracket positions", func() {
		jt, err := program.Resolve(program.Load("+[]"))

		Expect(err).NotTo(HaveOccurred())
		_, ok := jt.Match(0)
		Expect(ok).To(BeFalse())
		_, ok = jt.Match(99)
		Expect(ok).To(BeFalse())
	})

	It("should resolve sibling loops", func() {
		jt, err := program.Resolve(program.Load("[][]"))

		Expect(err).NotTo(HaveOccurred())
		Expect(jt.Pairs()).To(Equal(2))
		Expect(jt.Depth()).To(Equal(1))
		m, _ := jt.Match(2)
		Expect(m).To(Equal(3))
	})

	It("should resolve an empty program", func() {
		jt, err := program.Resolve(program.Load(""))

		Expect(err).NotTo(HaveOccurred())
		Expect(jt.Pairs()).To(Equal(0))
	})

	It("should report a dangling open bracket", func() {
		_, err := program.Resolve(program.Load("[[]"))

		Expect(errors.Is(err, program.ErrUnmatchedBracket)).To(BeTrue())

		var berr *program.UnmatchedBracketError
		Expect(errors.As(err, &berr)).To(BeTrue())
		Expect(berr.Pos).To(Equal(0))
		Expect(berr.Symbol).To(Equal(program.LoopOpen))
	})

	It("should report a close bracket without an open loop", func() {
		_, err := program.Resolve(program.Load("[]]"))

		var berr *program.UnmatchedBracketError
		Expect(errors.As(err, &berr)).To(BeTrue())
		Expect(berr.Pos).To(Equal(2))
		Expect(berr.Symbol).To(Equal(program.LoopClose))
	})

	It("should report crossed brackets", func() {
		_, err := program.Resolve(program.Load("]["))

		Expect(errors.Is(err, program.ErrUnmatchedBracket)).To(BeTrue())
	})
})
