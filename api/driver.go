// Package api defines the driver API that the orchestration layer uses to
// run and compile programs.
package api

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfzk/compiler"
	"github.com/sarchlab/bfzk/config"
	"github.com/sarchlab/bfzk/core"
	"github.com/sarchlab/bfzk/program"
	"github.com/sarchlab/bfzk/verify"
)

// Driver provides the interface to run and compile programs. Source text may
// contain any characters; input text is a comma-separated list of unsigned
// 32-bit decimals.
type Driver interface {
	// Interpret runs the program on the reference interpreter. On a fault
	// the partial result is returned together with the error.
	Interpret(source, input string) (core.Result, error)

	// Compile lowers the program to assembly text.
	Compile(source string) (string, error)

	// CrossCheck interprets the program and runs its compiled form on the
	// functional simulator with the same input.
	CrossCheck(source, input string) (*verify.VerificationReport, error)
}

type driverImpl struct {
	name string
	cfg  config.Config

	engine      sim.Engine
	coreBuilder core.Builder
	runs        int
}

func (d *driverImpl) Interpret(source, input string) (core.Result, error) {
	in, err := program.ParseInputs(input)
	if err != nil {
		return core.Result{}, err
	}

	p := program.Load(source)

	if d.engine == nil {
		return core.Run(p, nil, in, d.cfg.RunOptions()...)
	}

	return d.runOnCore(p, in)
}

func (d *driverImpl) runOnCore(p program.Program, in *program.Inputs) (core.Result, error) {
	c := d.coreBuilder.Build(fmt.Sprintf("%s.Core[%d]", d.name, d.runs))
	d.runs++

	if err := c.MapProgram(p, nil, in); err != nil {
		return core.Result{}, err
	}

	if err := d.engine.Run(); err != nil {
		return c.Result(), fmt.Errorf("engine failed: %w", err)
	}

	core.Trace("Driver",
		"Behavior", "Interpret",
		"Driver", d.name,
		"Core", c.Name(),
		"HaltTime", c.HaltTime(),
	)

	return c.Result(), c.Err()
}

func (d *driverImpl) Compile(source string) (string, error) {
	return compiler.Compile(program.Load(source), nil)
}

func (d *driverImpl) CrossCheck(source, input string) (*verify.VerificationReport, error) {
	in, err := program.ParseInputs(input)
	if err != nil {
		return nil, err
	}

	return verify.GenerateReport(d.name, program.Load(source), in, d.cfg), nil
}
