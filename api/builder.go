package api

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfzk/config"
)

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	cfg    *config.Config
	engine sim.Engine
	freq   sim.Freq
}

// WithConfig sets the machine configuration. Without it the driver uses
// config.Default.
func (b DriverBuilder) WithConfig(cfg config.Config) DriverBuilder {
	b.cfg = &cfg
	return b
}

// WithEngine sets the engine. With an engine, programs are interpreted on a
// simulated core instead of directly.
func (b DriverBuilder) WithEngine(engine sim.Engine) DriverBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the simulated core, overriding the
// configuration.
func (b DriverBuilder) WithFreq(freq sim.Freq) DriverBuilder {
	b.freq = freq
	return b
}

// Build create a driver.
func (b DriverBuilder) Build(name string) Driver {
	cfg := config.Default()
	if b.cfg != nil {
		cfg = *b.cfg
	}

	d := &driverImpl{
		name:   name,
		cfg:    cfg,
		engine: b.engine,
	}

	if b.engine != nil {
		d.coreBuilder = cfg.CoreBuilder(b.engine)
		if b.freq != 0 {
			d.coreBuilder = d.coreBuilder.WithFreq(b.freq)
		}
	}

	return d
}
