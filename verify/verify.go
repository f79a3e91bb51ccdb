// Package verify cross-checks the lowering compiler against the reference
// interpreter.
//
// The target machine that runs the emitted assembly is an external service,
// so equivalence is checked against a model of its instruction vocabulary:
//
// 1. Parser (ParseAsm): reads the emitted text back into instructions and
// labels.
//
// 2. Static Lint (lint.go): structural checks on the parsed program
//   - STRUCT checks: unknown mnemonics, duplicate or undefined labels,
//     missing final RET
//   - OPERAND checks: operand counts and register names
//
// 3. Functional Simulator (funcsim.go): executes the vocabulary with the
// memory, end-of-input and bounds rules of the interpreter. Its output must
// equal the interpreter's for every program and input.
//
// # Usage Example
//
//	p := program.Load(source)
//	in, _ := program.ParseInputs("72,105")
//
//	report := verify.GenerateReport("hi", p, in, config.Default())
//	report.WriteReport(os.Stdout)
//	if !report.OK() {
//	    log.Fatal(report.Diff())
//	}
//
// # Limitations
//
//   - Cycle counts of the external machine are not modeled; only the
//     number of executed assembly instructions is reported.
//   - Cells are 64-bit in both models; the external machine's field width
//     is not modeled.
package verify

import (
	"fmt"
	"strings"

	"github.com/sarchlab/bfzk/compiler"
)

// IssueType categorizes lint issues
type IssueType string

const (
	IssueStruct  IssueType = "STRUCT"  // Label or control-flow error
	IssueOperand IssueType = "OPERAND" // Operand count or register error
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType
	Line    int // 1-based source line, 0 if not applicable
	Message string
}

// AsmInst is one parsed instruction.
type AsmInst struct {
	Line     int
	Op       compiler.Mnemonic
	Operands []string
}

func (i AsmInst) String() string {
	if len(i.Operands) == 0 {
		return string(i.Op)
	}
	return string(i.Op) + " " + strings.Join(i.Operands, ", ")
}

// AsmProgram is assembly text split into instructions and labels. A label
// refers to the index of the instruction that follows it.
type AsmProgram struct {
	Insts  []AsmInst
	Labels map[string]int

	labelLines map[string][]int
}

// ParseAsm reads assembly text. Blank lines and everything after ';' are
// ignored. It only fails on lines it cannot split; semantic problems are
// left to RunLint.
func ParseAsm(text string) (*AsmProgram, error) {
	prog := &AsmProgram{
		Labels:     make(map[string]int),
		labelLines: make(map[string][]int),
	}

	for n, line := range strings.Split(text, "\n") {
		lineNo := n + 1

		if idx := strings.Index(line, ";"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasSuffix(line, ":") {
			name := strings.TrimSuffix(line, ":")
			if name == "" || strings.ContainsAny(name, " \t,:") {
				return nil, fmt.Errorf("line %d: invalid label %q", lineNo, line)
			}

			if _, ok := prog.Labels[name]; !ok {
				prog.Labels[name] = len(prog.Insts)
			}
			prog.labelLines[name] = append(prog.labelLines[name], lineNo)
			continue
		}

		inst := AsmInst{Line: lineNo}
		op, rest, _ := strings.Cut(line, " ")
		inst.Op = compiler.Mnemonic(op)

		rest = strings.TrimSpace(rest)
		if rest != "" {
			for _, operand := range strings.Split(rest, ",") {
				operand = strings.TrimSpace(operand)
				if operand == "" {
					return nil, fmt.Errorf("line %d: empty operand in %q", lineNo, line)
				}
				inst.Operands = append(inst.Operands, operand)
			}
		}

		prog.Insts = append(prog.Insts, inst)
	}

	return prog, nil
}
