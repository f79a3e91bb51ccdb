package core

import (
	"fmt"

	"github.com/sarchlab/bfzk/program"
)

type coreState struct {
	PC        int
	DataPtr   int
	Memory    []int64
	LoopStack []int
	Steps     uint64
	Output    []byte
	EOFReads  uint64
	Halted    bool

	Code   program.Program
	Jumps  *program.JumpTable
	Inputs *program.Inputs
}

func newCoreState(
	code program.Program,
	jumps *program.JumpTable,
	inputs *program.Inputs,
	memorySize int,
) coreState {
	return coreState{
		Memory: make([]int64, memorySize),
		Code:   code,
		Jumps:  jumps,
		Inputs: inputs,
	}
}

type instEmulator struct {
	maxSteps uint64
	tracer   Tracer
}

// RunInst retires the instruction at the program counter. Reaching the
// terminator halts the state without counting a step.
func (i instEmulator) RunInst(state *coreState) error {
	if state.Halted {
		return nil
	}

	pc := state.PC
	inst := state.Code.At(pc)
	if inst == program.Terminator {
		state.Halted = true
		return nil
	}

	if i.maxSteps > 0 && state.Steps >= i.maxSteps {
		return &StepLimitError{Limit: i.maxSteps, PC: pc}
	}

	state.Steps++

	var err error
	switch inst {
	case program.IncPtr:
		state.DataPtr++
	case program.DecPtr:
		err = i.runDecPtr(state)
	case program.IncCell:
		err = i.runAddCell(state, 1)
	case program.DecCell:
		err = i.runAddCell(state, -1)
	case program.Read:
		err = i.runRead(state)
	case program.Write:
		err = i.runWrite(state)
	case program.LoopOpen:
		err = i.runLoopOpen(state)
	case program.LoopClose:
		err = i.runLoopClose(state)
	default:
		err = fmt.Errorf("unknown instruction %q at PC %d", rune(inst), pc)
	}

	if err != nil {
		return err
	}

	state.PC++

	if i.tracer != nil {
		i.tracer.Retire(pc, inst, state.DataPtr)
	}

	return nil
}

func (i instEmulator) cell(state *coreState) (*int64, error) {
	if state.DataPtr < 0 || state.DataPtr >= len(state.Memory) {
		return nil, &MemoryBoundsError{
			PC:      state.PC,
			DataPtr: state.DataPtr,
			Size:    len(state.Memory),
		}
	}
	return &state.Memory[state.DataPtr], nil
}

func (i instEmulator) runDecPtr(state *coreState) error {
	if state.DataPtr == 0 {
		return &MemoryBoundsError{
			PC:      state.PC,
			DataPtr: -1,
			Size:    len(state.Memory),
		}
	}

	state.DataPtr--
	return nil
}

func (i instEmulator) runAddCell(state *coreState, delta int64) error {
	c, err := i.cell(state)
	if err != nil {
		return err
	}

	*c += delta
	return nil
}

func (i instEmulator) runRead(state *coreState) error {
	c, err := i.cell(state)
	if err != nil {
		return err
	}

	v, ok := state.Inputs.Pop()
	if !ok {
		state.EOFReads++
	}
	*c = v

	return nil
}

func (i instEmulator) runWrite(state *coreState) error {
	c, err := i.cell(state)
	if err != nil {
		return err
	}

	state.Output = append(state.Output, byte(*c))
	return nil
}

// runLoopOpen skips to the matching ']' when the current cell is zero, so the
// following increment resumes just past it.
func (i instEmulator) runLoopOpen(state *coreState) error {
	c, err := i.cell(state)
	if err != nil {
		return err
	}

	if *c != 0 {
		state.LoopStack = append(state.LoopStack, state.PC)
		return nil
	}

	end, ok := state.Jumps.Match(state.PC)
	if !ok {
		return &program.UnmatchedBracketError{
			Pos:    state.PC,
			Symbol: program.LoopOpen,
		}
	}
	state.PC = end

	return nil
}

// runLoopClose returns to one position before the matching '[' so that the
// loop condition is evaluated again.
func (i instEmulator) runLoopClose(state *coreState) error {
	n := len(state.LoopStack)
	if n == 0 {
		return &program.UnmatchedBracketError{
			Pos:    state.PC,
			Symbol: program.LoopClose,
		}
	}

	start := state.LoopStack[n-1]
	state.LoopStack = state.LoopStack[:n-1]
	state.PC = start - 1

	return nil
}
