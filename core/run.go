// Package core implements the reference interpreter. Run executes a program
// directly; Core drives the same emulator from an akita simulation engine,
// retiring one instruction per cycle.
package core

import (
	"fmt"

	"github.com/sarchlab/bfzk/program"
)

// DefaultMemorySize is the number of cells a run gets unless configured
// otherwise.
const DefaultMemorySize = 30000

// Result is the outcome of a completed run.
type Result struct {
	// Steps counts retired instructions. The terminator is not counted.
	Steps uint64

	// Output holds the byte-truncated value of every written cell.
	Output []byte

	// EOFReads counts reads that found the input queue empty.
	EOFReads uint64

	DataPtr int
	Memory  []int64
}

type runConfig struct {
	memorySize int
	memory     []int64
	maxSteps   uint64
	tracer     Tracer
}

// Option configures a run.
type Option func(*runConfig)

// WithMemorySize sets the number of cells.
func WithMemorySize(n int) Option {
	return func(c *runConfig) {
		c.memorySize = n
	}
}

// WithMemory preloads the first cells of memory.
func WithMemory(cells []int64) Option {
	return func(c *runConfig) {
		c.memory = cells
	}
}

// WithMaxSteps stops the run with a *StepLimitError once n instructions have
// been retired. Zero means no limit.
func WithMaxSteps(n uint64) Option {
	return func(c *runConfig) {
		c.maxSteps = n
	}
}

// WithTracer reports every retired instruction to t.
func WithTracer(t Tracer) Option {
	return func(c *runConfig) {
		c.tracer = t
	}
}

// Run interprets p until it reaches the terminator, consuming in. A nil jump
// table is resolved from p; a non-nil one must have been resolved from p.
func Run(
	p program.Program,
	jt *program.JumpTable,
	in *program.Inputs,
	opts ...Option,
) (Result, error) {
	cfg := runConfig{memorySize: DefaultMemorySize}
	for _, opt := range opts {
		opt(&cfg)
	}

	state, err := prepare(p, jt, in, cfg.memorySize, cfg.memory)
	if err != nil {
		return Result{}, err
	}

	emu := instEmulator{maxSteps: cfg.maxSteps, tracer: cfg.tracer}
	for !state.Halted {
		if err := emu.RunInst(&state); err != nil {
			LogState(&state)
			return state.result(), err
		}
	}

	Trace("Run",
		"Behavior", "Halt",
		"Steps", state.Steps,
		"Output", len(state.Output),
	)

	return state.result(), nil
}

func prepare(
	p program.Program,
	jt *program.JumpTable,
	in *program.Inputs,
	memorySize int,
	preload []int64,
) (coreState, error) {
	if jt == nil {
		var err error
		jt, err = program.Resolve(p)
		if err != nil {
			return coreState{}, err
		}
	} else if !jt.Covers(p) {
		return coreState{}, fmt.Errorf("jump table was not resolved from this program")
	}

	if memorySize <= 0 {
		return coreState{}, fmt.Errorf("invalid memory size %d", memorySize)
	}
	if len(preload) > memorySize {
		return coreState{}, fmt.Errorf(
			"preloaded %d cells into memory of %d cells", len(preload), memorySize)
	}

	if in == nil {
		in = program.NewInputs()
	}

	state := newCoreState(p, jt, in, memorySize)
	copy(state.Memory, preload)

	return state, nil
}

func (s *coreState) result() Result {
	return Result{
		Steps:    s.Steps,
		Output:   s.Output,
		EOFReads: s.EOFReads,
		DataPtr:  s.DataPtr,
		Memory:   s.Memory,
	}
}
