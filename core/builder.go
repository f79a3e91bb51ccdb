package core

import (
	"github.com/sarchlab/akita/v4/sim"
)

// Builder can create new cores.
type Builder struct {
	engine     sim.Engine
	freq       sim.Freq
	memorySize int
	maxSteps   uint64
	tracer     Tracer
}

// NewBuilder returns a builder with the default memory size at 1 GHz.
func NewBuilder() Builder {
	return Builder{
		freq:       1 * sim.GHz,
		memorySize: DefaultMemorySize,
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core. One instruction retires per cycle.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithMemorySize sets the number of memory cells.
func (b Builder) WithMemorySize(n int) Builder {
	b.memorySize = n
	return b
}

// WithMaxSteps stops the core after n retired instructions. Zero means no
// limit.
func (b Builder) WithMaxSteps(n uint64) Builder {
	b.maxSteps = n
	return b
}

// WithTracer reports every retired instruction to t.
func (b Builder) WithTracer(t Tracer) Builder {
	b.tracer = t
	return b
}

// Build creates a core.
func (b Builder) Build(name string) *Core {
	if b.freq == 0 {
		b.freq = 1 * sim.GHz
	}
	if b.memorySize == 0 {
		b.memorySize = DefaultMemorySize
	}

	c := &Core{
		memorySize: b.memorySize,
		emu: instEmulator{
			maxSteps: b.maxSteps,
			tracer:   b.tracer,
		},
	}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	return c
}
