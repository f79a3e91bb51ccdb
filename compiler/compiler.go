// Package compiler lowers a program into assembly text for a load/store
// machine with labeled branches.
package compiler

import (
	"fmt"
	"strings"

	"github.com/sarchlab/bfzk/program"
)

// Options changes the shape of the emitted text, never its instructions.
type Options struct {
	// Comments prefixes the lowering of every command with "; pc=N 'c'".
	Comments bool
}

type loopLabel struct {
	Open  string
	Close string
}

// codeGen holds the state of a single compilation.
type codeGen struct {
	opts      Options
	jt        *program.JumpTable
	out       []string
	nextLabel int
	loops     map[int]loopLabel
}

func (cg *codeGen) newLoop() loopLabel {
	l := loopLabel{
		Open:  fmt.Sprintf("loop_%d", cg.nextLabel),
		Close: fmt.Sprintf("end_%d", cg.nextLabel),
	}
	cg.nextLabel++
	return l
}

func (cg *codeGen) inst(m Mnemonic, operands ...string) {
	if len(operands) == 0 {
		cg.out = append(cg.out, "    "+string(m))
		return
	}
	cg.out = append(cg.out, "    "+string(m)+" "+strings.Join(operands, ", "))
}

func (cg *codeGen) label(name string) {
	cg.out = append(cg.out, name+":")
}

func (cg *codeGen) comment(format string, args ...any) {
	cg.out = append(cg.out, "; "+fmt.Sprintf(format, args...))
}

// Compile lowers p to assembly text. jt must have been resolved from p; a
// nil table is resolved here, so unbalanced brackets fail with
// program.ErrUnmatchedBracket. Every ']' closes the loop its jump table entry
// names.
func Compile(p program.Program, jt *program.JumpTable) (string, error) {
	return CompileWithOptions(p, jt, Options{})
}

// CompileWithOptions is Compile with formatting options.
func CompileWithOptions(
	p program.Program,
	jt *program.JumpTable,
	opts Options,
) (string, error) {
	if jt == nil {
		var err error
		jt, err = program.Resolve(p)
		if err != nil {
			return "", err
		}
	} else if !jt.Covers(p) {
		return "", fmt.Errorf("jump table was not resolved from this program")
	}

	cg := &codeGen{
		opts:  opts,
		jt:    jt,
		loops: make(map[int]loopLabel, jt.Pairs()),
	}

	for pc := 0; pc < p.Len(); pc++ {
		if err := cg.lower(pc, p.At(pc)); err != nil {
			return "", err
		}
	}

	return strings.Join(cg.out, "\n"), nil
}

func (cg *codeGen) lower(pc int, inst program.Command) error {
	if cg.opts.Comments && inst != program.Terminator {
		cg.comment("pc=%d '%s'", pc, inst)
	}

	switch inst {
	case program.IncPtr:
		cg.inst(IncDP)
	case program.DecPtr:
		cg.inst(DecDP)
	case program.IncCell:
		cg.inst(IncCell)
	case program.DecCell:
		cg.inst(DecCell)
	case program.Read:
		cg.inst(Read, RegA)
		cg.inst(Store, RegA)
		cg.inst(IncIn)
	case program.Write:
		cg.inst(Load, RegA)
		cg.inst(Write, RegA)
	case program.LoopOpen:
		l := cg.newLoop()
		cg.loops[pc] = l
		cg.label(l.Open)
		cg.inst(Load, RegA)
		cg.inst(BZ, RegA, l.Close)
	case program.LoopClose:
		open, ok := cg.jt.Match(pc)
		if !ok {
			return &program.UnmatchedBracketError{Pos: pc, Symbol: program.LoopClose}
		}
		l, ok := cg.loops[open]
		if !ok {
			return fmt.Errorf("jump table pairs ']' at %d with %d, which opens no loop", pc, open)
		}
		cg.inst(JMP, l.Open)
		cg.label(l.Close)
	case program.Terminator:
		cg.inst(RET)
	default:
		return fmt.Errorf("unknown instruction %q at position %d", rune(inst), pc)
	}

	return nil
}
