package verify

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/bfzk/compiler"
	"github.com/sarchlab/bfzk/config"
	"github.com/sarchlab/bfzk/core"
	"github.com/sarchlab/bfzk/program"
)

// VerificationReport represents a complete verification report
type VerificationReport struct {
	Name       string
	Commands   int
	Loops      int
	LoopDepth  int
	ResolveErr error

	Interp    core.Result
	InterpErr error

	Asm           string
	AsmLines      int
	CompileErr    error
	LintIssues    []Issue
	SimOutput     []byte
	SimSteps      uint64
	SimulationErr error

	Expected    []byte
	HasExpected bool
}

// GenerateReport resolves, interprets and compiles p, then runs the compiled
// program on the functional simulator with the same inputs. in is not
// consumed.
func GenerateReport(
	name string,
	p program.Program,
	in *program.Inputs,
	cfg config.Config,
) *VerificationReport {
	report := &VerificationReport{
		Name:     name,
		Commands: len(p.Commands()),
	}

	jt, err := program.Resolve(p)
	if err != nil {
		report.ResolveErr = err
		return report
	}
	report.Loops = jt.Pairs()
	report.LoopDepth = jt.Depth()

	// Run the reference interpreter
	report.Interp, report.InterpErr = core.Run(p, jt, in.Clone(), cfg.RunOptions()...)

	// Compile and lint
	report.Asm, report.CompileErr = compiler.Compile(p, jt)
	if report.CompileErr != nil {
		return report
	}
	report.AsmLines = strings.Count(report.Asm, "\n") + 1

	asm, err := ParseAsm(report.Asm)
	if err != nil {
		report.CompileErr = err
		return report
	}
	report.LintIssues = RunLint(asm)

	// Run functional simulation
	fs := NewFunctionalSimulator(asm, cfg.MemorySize)
	report.SimulationErr = fs.Run(in.Clone(), simStepLimit(cfg.MaxSteps))
	report.SimOutput = fs.Output()
	report.SimSteps = fs.Steps()

	core.Trace("Verify",
		"Behavior", "Report",
		"Name", name,
		"InterpSteps", report.Interp.Steps,
		"SimSteps", report.SimSteps,
		"Match", report.OutputsMatch(),
	)

	return report
}

// simStepLimit bounds the simulation of a program whose interpretation is
// bounded by maxSteps. No command lowers to more than three instructions.
func simStepLimit(maxSteps uint64) uint64 {
	if maxSteps == 0 {
		return 0
	}
	return 3*maxSteps + 1
}

// WithExpected records the output the program is expected to produce.
func (r *VerificationReport) WithExpected(out []byte) *VerificationReport {
	r.Expected = out
	r.HasExpected = true
	return r
}

// OutputsMatch reports whether the interpreter and the compiled program
// wrote the same bytes and stopped for the same reason. If either run hit its
// step limit, the outputs only have to agree up to the shorter one.
func (r *VerificationReport) OutputsMatch() bool {
	if r.ResolveErr != nil || r.CompileErr != nil {
		return false
	}
	if r.StepLimited() {
		return bytes.HasPrefix(r.Interp.Output, r.SimOutput) ||
			bytes.HasPrefix(r.SimOutput, r.Interp.Output)
	}
	if !bytes.Equal(r.Interp.Output, r.SimOutput) {
		return false
	}
	return sameFailure(r.InterpErr, r.SimulationErr)
}

// StepLimited reports whether either run was cut short by its step limit,
// which leaves the comparison inconclusive.
func (r *VerificationReport) StepLimited() bool {
	return errors.Is(r.InterpErr, core.ErrStepLimit) ||
		errors.Is(r.SimulationErr, core.ErrStepLimit)
}

func sameFailure(a, b error) bool {
	switch {
	case a == nil || b == nil:
		return a == nil && b == nil
	case errors.Is(a, core.ErrMemoryBounds):
		return errors.Is(b, core.ErrMemoryBounds)
	default:
		return false
	}
}

// OK reports whether the program is well formed, runs to completion, lints
// clean, compiles equivalently and, if an expected output was recorded,
// produces it.
func (r *VerificationReport) OK() bool {
	if r.InterpErr != nil || r.StepLimited() || len(r.LintIssues) > 0 || !r.OutputsMatch() {
		return false
	}
	if r.HasExpected && !bytes.Equal(r.Interp.Output, r.Expected) {
		return false
	}
	return true
}

// Diff describes how the compiled program's output differs from the
// interpreter's, or returns an empty string.
func (r *VerificationReport) Diff() string {
	return cmp.Diff(r.Interp.Output, r.SimOutput)
}

// WriteReport writes a formatted report to a writer
func (r *VerificationReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "VERIFICATION REPORT: %s\n", r.Name)
	fmt.Fprintln(w, separator)

	if r.ResolveErr != nil {
		fmt.Fprintf(w, "⚠ Program is malformed: %v\n\n", r.ResolveErr)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Stage", "Result", "Detail"})
	t.AppendRow(table.Row{"Program", "✓",
		fmt.Sprintf("%d commands, %d loops, depth %d", r.Commands, r.Loops, r.LoopDepth)})
	t.AppendRow(table.Row{"Interpreter", status(r.InterpErr),
		fmt.Sprintf("%d steps, %d bytes out", r.Interp.Steps, len(r.Interp.Output))})

	if r.CompileErr != nil {
		t.AppendRow(table.Row{"Compiler", status(r.CompileErr), ""})
		t.Render()
		return
	}

	lint := "✓"
	if len(r.LintIssues) > 0 {
		lint = fmt.Sprintf("⚠ %d issues", len(r.LintIssues))
	}
	t.AppendRow(table.Row{"Compiler", "✓", fmt.Sprintf("%d lines", r.AsmLines)})
	t.AppendRow(table.Row{"Lint", lint, ""})
	t.AppendRow(table.Row{"Simulation", status(r.SimulationErr),
		fmt.Sprintf("%d instructions, %d bytes out", r.SimSteps, len(r.SimOutput))})

	match := "✓"
	switch {
	case !r.OutputsMatch():
		match = "⚠ MISMATCH"
	case r.StepLimited():
		match = "⚠ step limit"
	}
	t.AppendRow(table.Row{"Equivalence", match, ""})

	if r.HasExpected {
		expected := "✓"
		if !bytes.Equal(r.Interp.Output, r.Expected) {
			expected = "⚠ MISMATCH"
		}
		t.AppendRow(table.Row{"Expected output", expected, ""})
	}
	t.Render()

	for _, issue := range r.LintIssues {
		fmt.Fprintf(w, "  [%s line %d] %s\n", issue.Type, issue.Line, issue.Message)
	}
	if !r.OutputsMatch() {
		fmt.Fprintf(w, "Output diff (-interpreter +compiled):\n%s", r.Diff())
	}

	fmt.Fprintln(w)
}

func status(err error) string {
	if err != nil {
		return "⚠ " + err.Error()
	}
	return "✓"
}

// WriteSummary writes one row per report.
func WriteSummary(w io.Writer, reports []*VerificationReport) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Verification Summary")
	t.AppendHeader(table.Row{"Program", "Steps", "Asm Lines", "Asm Instructions", "Result"})

	passed := 0
	for _, r := range reports {
		result := "FAILED"
		if r.OK() {
			result = "PASSED"
			passed++
		}
		t.AppendRow(table.Row{r.Name, r.Interp.Steps, r.AsmLines, r.SimSteps, result})
	}
	t.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("%d/%d", passed, len(reports))})
	t.Render()
}

// SaveReportToFile saves the report to a file
func (r *VerificationReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}
