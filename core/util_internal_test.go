package core

import (
	"io"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bfzk/program"
)

var _ = Describe("LogState", func() {
	It("should not print the state while printing is off", func() {
		p := program.Load("+>")
		jt, err := program.Resolve(p)
		Expect(err).NotTo(HaveOccurred())
		s := newCoreState(p, jt, program.NewInputs(), 8)

		r, w, err := os.Pipe()
		Expect(err).NotTo(HaveOccurred())
		stdout := os.Stdout
		os.Stdout = w
		LogState(&s)
		os.Stdout = stdout
		Expect(w.Close()).To(Succeed())

		out, err := io.ReadAll(r)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(BeEmpty())
		Expect(PrintToggle).To(BeFalse())
	})
})
