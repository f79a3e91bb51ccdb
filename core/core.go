package core

import (
	"errors"
	"log/slog"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfzk/program"
)

// ErrNoProgram is returned by a core that has no program mapped.
var ErrNoProgram = errors.New("no program mapped")

// Core is a simulated machine that retires one instruction per tick. It
// produces the same Result as Run.
type Core struct {
	*sim.TickingComponent

	memorySize int
	mapped     bool
	haltTime   float64

	state coreState
	emu   instEmulator
	err   error
}

// MapProgram loads the program and its inputs into the core and schedules
// the first tick. A nil jump table is resolved from p.
func (c *Core) MapProgram(p program.Program, jt *program.JumpTable, in *program.Inputs) error {
	state, err := prepare(p, jt, in, c.memorySize, nil)
	if err != nil {
		return err
	}

	c.state = state
	c.err = nil
	c.mapped = true
	c.haltTime = 0

	Trace("MapProgram",
		"Core", c.Name(),
		"Length", p.Len(),
	)

	c.TickNow()

	return nil
}

// Tick runs the program for one cycle.
func (c *Core) Tick() (madeProgress bool) {
	if !c.mapped || c.state.Halted || c.err != nil {
		return false
	}

	if err := c.emu.RunInst(&c.state); err != nil {
		c.err = err
		c.haltTime = float64(c.Engine.CurrentTime())

		Trace("Core",
			"Behavior", "Fault",
			"Core", c.Name(),
			slog.Float64("Time", c.haltTime*1e9),
			"PC", c.state.PC,
			"Error", err.Error(),
		)
		LogState(&c.state)

		return false
	}

	if c.state.Halted {
		c.haltTime = float64(c.Engine.CurrentTime())

		Trace("Core",
			"Behavior", "Halt",
			"Core", c.Name(),
			slog.Float64("Time", c.haltTime*1e9),
			"Steps", c.state.Steps,
		)

		return false
	}

	return true
}

// Halted reports whether the core reached the terminator.
func (c *Core) Halted() bool {
	return c.state.Halted
}

// Err returns the fault that stopped the core, or ErrNoProgram if nothing
// was mapped.
func (c *Core) Err() error {
	if !c.mapped {
		return ErrNoProgram
	}
	return c.err
}

// Result returns the state of the run so far.
func (c *Core) Result() Result {
	return c.state.result()
}

// HaltTime returns the simulated time, in seconds, at which the core halted
// or faulted.
func (c *Core) HaltTime() float64 {
	return c.haltTime
}
