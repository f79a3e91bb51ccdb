package verify_test

import (
	"bytes"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bfzk/config"
	"github.com/sarchlab/bfzk/core"
	"github.com/sarchlab/bfzk/program"
	"github.com/sarchlab/bfzk/verify"
)

const helloWorld = "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."

// randomProgram builds a balanced program. Loop bodies walk away from the
// loop cell and back before decrementing it.
func randomProgram(r *rand.Rand, depth int) string {
	var sb strings.Builder
	n := 1 + r.Intn(8)
	for i := 0; i < n; i++ {
		switch k := r.Intn(10); {
		case k < 3:
			sb.WriteByte("+-"[r.Intn(2)])
		case k < 5:
			sb.WriteByte("><"[r.Intn(2)])
		case k < 7:
			sb.WriteByte(".,"[r.Intn(2)])
		case depth < 3:
			shift := strings.Repeat(">", 1+r.Intn(3))
			sb.WriteString("[" + shift + randomProgram(r, depth+1))
			sb.WriteString(strings.Repeat("<", len(shift)) + "-]")
		}
	}
	return sb.String()
}

var _ = Describe("GenerateReport", func() {
	cfg := config.Default().WithMaxSteps(100000)

	It("should pass hello world", func() {
		r := verify.GenerateReport("hello", program.Load(helloWorld), nil, cfg).
			WithExpected([]byte("Hello World!\n"))

		Expect(r.ResolveErr).NotTo(HaveOccurred())
		Expect(r.Loops).To(Equal(3))
		Expect(r.LoopDepth).To(Equal(2))
		Expect(r.LintIssues).To(BeEmpty())
		Expect(r.OutputsMatch()).To(BeTrue(), r.Diff())
		Expect(r.OK()).To(BeTrue())
		Expect(r.SimSteps).To(BeNumerically(">", r.Interp.Steps))
	})

	It("should not consume the caller's inputs", func() {
		in := program.NewInputs(1, 2, 3)
		r := verify.GenerateReport("echo", program.Load(",.,.,."), in, cfg)

		Expect(r.OK()).To(BeTrue())
		Expect(r.SimOutput).To(Equal([]byte{1, 2, 3}))
		Expect(in.Len()).To(Equal(3))
	})

	It("should fail on an unexpected output", func() {
		r := verify.GenerateReport("three", program.Load("+++."), nil, cfg).
			WithExpected([]byte{4})

		Expect(r.OutputsMatch()).To(BeTrue())
		Expect(r.OK()).To(BeFalse())
	})

	It("should report malformed programs", func() {
		r := verify.GenerateReport("bad", program.Load("+["), nil, cfg)

		Expect(errors.Is(r.ResolveErr, program.ErrUnmatchedBracket)).To(BeTrue())
		Expect(r.OK()).To(BeFalse())

		var buf bytes.Buffer
		r.WriteReport(&buf)
		Expect(buf.String()).To(ContainSubstring("malformed"))
	})

	It("should treat matching bounds faults as equivalent", func() {
		r := verify.GenerateReport("left", program.Load("+.<"), nil, cfg)

		Expect(errors.Is(r.InterpErr, core.ErrMemoryBounds)).To(BeTrue())
		Expect(errors.Is(r.SimulationErr, core.ErrMemoryBounds)).To(BeTrue())
		Expect(r.OutputsMatch()).To(BeTrue())
		Expect(r.OK()).To(BeFalse())
	})

	It("should treat runs cut short by the step limit as inconclusive", func() {
		r := verify.GenerateReport("forever", program.Load("+[.]"), nil,
			config.Default().WithMaxSteps(10))

		Expect(errors.Is(r.InterpErr, core.ErrStepLimit)).To(BeTrue())
		Expect(errors.Is(r.SimulationErr, core.ErrStepLimit)).To(BeTrue())
		Expect(len(r.SimOutput)).To(BeNumerically(">", len(r.Interp.Output)))
		Expect(r.StepLimited()).To(BeTrue())
		Expect(r.OutputsMatch()).To(BeTrue())
		Expect(r.OK()).To(BeFalse())

		var buf bytes.Buffer
		r.WriteReport(&buf)
		Expect(buf.String()).To(ContainSubstring("step limit"))
		Expect(buf.String()).NotTo(ContainSubstring("MISMATCH"))
		Expect(buf.String()).NotTo(ContainSubstring("Output diff"))
	})

	It("should agree with the interpreter on generated programs", func() {
		r := rand.New(rand.NewSource(1))
		small := config.Default().WithMemorySize(16).WithMaxSteps(2000)

		checked := 0
		for i := 0; i < 300; i++ {
			src := randomProgram(r, 0)
			in := program.NewInputs(uint32(r.Intn(5)), uint32(r.Intn(5)))

			report := verify.GenerateReport("random", program.Load(src), in, small)
			Expect(report.ResolveErr).NotTo(HaveOccurred(), src)
			if errors.Is(report.InterpErr, core.ErrStepLimit) {
				continue
			}

			Expect(report.LintIssues).To(BeEmpty(), src)
			Expect(report.OutputsMatch()).To(BeTrue(),
				"%s\ninterp: %v\nsim: %v\n%s", src, report.InterpErr, report.SimulationErr, report.Diff())
			checked++
		}

		Expect(checked).To(BeNumerically(">", 50))
	})

	It("should write a report and a summary", func() {
		ok := verify.GenerateReport("hello", program.Load(helloWorld), nil, cfg)
		bad := verify.GenerateReport("three", program.Load("+++."), nil, cfg).
			WithExpected([]byte{4})

		var buf bytes.Buffer
		ok.WriteReport(&buf)
		Expect(buf.String()).To(ContainSubstring("VERIFICATION REPORT: hello"))
		Expect(buf.String()).To(ContainSubstring("Equivalence"))
		Expect(buf.String()).NotTo(ContainSubstring("MISMATCH"))

		buf.Reset()
		bad.WriteReport(&buf)
		Expect(buf.String()).To(ContainSubstring("MISMATCH"))

		buf.Reset()
		verify.WriteSummary(&buf, []*verify.VerificationReport{ok, bad})
		Expect(buf.String()).To(ContainSubstring("PASSED"))
		Expect(buf.String()).To(ContainSubstring("FAILED"))
		Expect(buf.String()).To(ContainSubstring("1/2"))
	})

	It("should save a report to a file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "report.txt")
		r := verify.GenerateReport("three", program.Load("+++."), nil, cfg)

		Expect(r.SaveReportToFile(path)).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring("VERIFICATION REPORT: three"))
	})
})
