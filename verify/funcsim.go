package verify

import (
	"fmt"

	"github.com/sarchlab/bfzk/compiler"
	"github.com/sarchlab/bfzk/core"
	"github.com/sarchlab/bfzk/program"
)

// FunctionalSimulator executes an assembly program with the semantics the
// external machine must implement.
type FunctionalSimulator struct {
	prog *AsmProgram

	memory []int64
	dp     int
	regA   int64
	pc     int
	cursor int
	inputs []uint32
	output []byte
	steps  uint64
	halted bool

	TraceInstPre func(pc int, inst *AsmInst)
}

// NewFunctionalSimulator creates a simulator with memorySize zeroed cells.
func NewFunctionalSimulator(prog *AsmProgram, memorySize int) *FunctionalSimulator {
	return &FunctionalSimulator{
		prog:   prog,
		memory: make([]int64, memorySize),
	}
}

// PreloadMemory preloads a memory cell with a value
func (fs *FunctionalSimulator) PreloadMemory(address int, value int64) error {
	if address < 0 || address >= len(fs.memory) {
		return fmt.Errorf("invalid address %d", address)
	}
	fs.memory[address] = value
	return nil
}

// Run executes the program until RET, consuming one value of in for every
// INC_IN that passes over an available value. maxSteps bounds the number of
// executed instructions; zero means no limit.
func (fs *FunctionalSimulator) Run(in *program.Inputs, maxSteps uint64) error {
	if fs.prog == nil {
		return fmt.Errorf("FunctionalSimulator not properly initialized")
	}

	fs.inputs = in.Values()
	defer func() {
		for k := 0; k < fs.cursor && k < len(fs.inputs); k++ {
			in.Pop()
		}
	}()

	for !fs.halted {
		if fs.pc < 0 || fs.pc >= len(fs.prog.Insts) {
			return fmt.Errorf("execution left the program at instruction %d", fs.pc)
		}

		if maxSteps > 0 && fs.steps >= maxSteps {
			return &core.StepLimitError{Limit: maxSteps, PC: fs.pc}
		}

		inst := &fs.prog.Insts[fs.pc]
		if fs.TraceInstPre != nil {
			fs.TraceInstPre(fs.pc, inst)
		}

		fs.steps++
		if err := fs.executeInst(inst); err != nil {
			return fmt.Errorf("line %d %s: %w", inst.Line, inst, err)
		}
	}

	return nil
}

// executeInst executes a single instruction and advances the program
// counter.
func (fs *FunctionalSimulator) executeInst(inst *AsmInst) error {
	next := fs.pc + 1

	if info, ok := compiler.Lookup(inst.Op); ok && len(inst.Operands) != info.Operands {
		return fmt.Errorf("%s takes %d operands, got %d",
			inst.Op, info.Operands, len(inst.Operands))
	}

	switch inst.Op {
	case compiler.IncDP:
		fs.dp++
	case compiler.DecDP:
		if fs.dp == 0 {
			return fs.boundsError(-1)
		}
		fs.dp--
	case compiler.IncCell, compiler.DecCell:
		c, err := fs.cell()
		if err != nil {
			return err
		}
		if inst.Op == compiler.IncCell {
			*c++
		} else {
			*c--
		}
	case compiler.Load:
		c, err := fs.cell()
		if err != nil {
			return err
		}
		fs.regA = *c
	case compiler.Store:
		c, err := fs.cell()
		if err != nil {
			return err
		}
		*c = fs.regA
	case compiler.Read:
		fs.regA = program.EOF
		if fs.cursor < len(fs.inputs) {
			fs.regA = int64(fs.inputs[fs.cursor])
		}
	case compiler.IncIn:
		fs.cursor++
	case compiler.Write:
		fs.output = append(fs.output, byte(fs.regA))
	case compiler.BZ:
		if fs.regA == 0 {
			target, err := fs.target(inst.Operands[1])
			if err != nil {
				return err
			}
			next = target
		}
	case compiler.JMP:
		target, err := fs.target(inst.Operands[0])
		if err != nil {
			return err
		}
		next = target
	case compiler.RET:
		fs.halted = true
	default:
		return fmt.Errorf("unknown instruction %s", inst.Op)
	}

	fs.pc = next
	return nil
}

func (fs *FunctionalSimulator) cell() (*int64, error) {
	if fs.dp < 0 || fs.dp >= len(fs.memory) {
		return nil, fs.boundsError(fs.dp)
	}
	return &fs.memory[fs.dp], nil
}

func (fs *FunctionalSimulator) boundsError(dp int) error {
	return &core.MemoryBoundsError{PC: fs.pc, DataPtr: dp, Size: len(fs.memory)}
}

func (fs *FunctionalSimulator) target(label string) (int, error) {
	idx, ok := fs.prog.Labels[label]
	if !ok {
		return 0, fmt.Errorf("undefined label %s", label)
	}
	return idx, nil
}

// Output returns the bytes written so far.
func (fs *FunctionalSimulator) Output() []byte {
	return fs.output
}

// Steps returns the number of executed instructions.
func (fs *FunctionalSimulator) Steps() uint64 {
	return fs.steps
}

// Halted reports whether RET was executed.
func (fs *FunctionalSimulator) Halted() bool {
	return fs.halted
}

// DataPtr returns the current data pointer.
func (fs *FunctionalSimulator) DataPtr() int {
	return fs.dp
}

// GetMemoryValue retrieves a memory cell, or 0 outside memory.
func (fs *FunctionalSimulator) GetMemoryValue(address int) int64 {
	if address < 0 || address >= len(fs.memory) {
		return 0
	}
	return fs.memory[address]
}
