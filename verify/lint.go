package verify

import (
	"fmt"
	"sort"

	"github.com/sarchlab/bfzk/compiler"
)

// RunLint performs static checks on a parsed assembly program.
// Returns a list of issues found, or empty list if no issues.
func RunLint(prog *AsmProgram) []Issue {
	var issues []Issue

	// STRUCT: labels defined more than once
	names := make([]string, 0, len(prog.labelLines))
	for name := range prog.labelLines {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		lines := prog.labelLines[name]
		if len(lines) > 1 {
			issues = append(issues, Issue{
				Type:    IssueStruct,
				Line:    lines[1],
				Message: fmt.Sprintf("label %s already defined on line %d", name, lines[0]),
			})
		}
	}

	for _, inst := range prog.Insts {
		issues = append(issues, lintInst(prog, inst)...)
	}

	// STRUCT: the program must end with a return
	if len(prog.Insts) == 0 || prog.Insts[len(prog.Insts)-1].Op != compiler.RET {
		issues = append(issues, Issue{
			Type:    IssueStruct,
			Message: "program does not end with RET",
		})
	}

	return issues
}

func lintInst(prog *AsmProgram, inst AsmInst) []Issue {
	var issues []Issue

	info, ok := compiler.Lookup(inst.Op)
	if !ok {
		return []Issue{{
			Type:    IssueStruct,
			Line:    inst.Line,
			Message: fmt.Sprintf("unknown instruction %s", inst.Op),
		}}
	}

	if len(inst.Operands) != info.Operands {
		return []Issue{{
			Type: IssueOperand,
			Line: inst.Line,
			Message: fmt.Sprintf("%s takes %d operands, got %d",
				inst.Op, info.Operands, len(inst.Operands)),
		}}
	}

	switch inst.Op {
	case compiler.Load, compiler.Store, compiler.Read, compiler.Write:
		issues = append(issues, lintRegister(inst, inst.Operands[0])...)
	case compiler.BZ:
		issues = append(issues, lintRegister(inst, inst.Operands[0])...)
		issues = append(issues, lintTarget(prog, inst, inst.Operands[1])...)
	case compiler.JMP:
		issues = append(issues, lintTarget(prog, inst, inst.Operands[0])...)
	}

	return issues
}

func lintRegister(inst AsmInst, reg string) []Issue {
	if reg == compiler.RegA {
		return nil
	}

	return []Issue{{
		Type:    IssueOperand,
		Line:    inst.Line,
		Message: fmt.Sprintf("%s uses unknown register %s", inst.Op, reg),
	}}
}

func lintTarget(prog *AsmProgram, inst AsmInst, label string) []Issue {
	if _, ok := prog.Labels[label]; ok {
		return nil
	}

	return []Issue{{
		Type:    IssueStruct,
		Line:    inst.Line,
		Message: fmt.Sprintf("%s targets undefined label %s", inst.Op, label),
	}}
}
