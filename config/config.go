// Package config holds the parameters of a run. Everything is passed in
// explicitly; nothing is read from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfzk/core"
	"gopkg.in/yaml.v3"
)

// Config describes the machine a program runs on.
type Config struct {
	// MemorySize is the number of cells.
	MemorySize int `yaml:"memory_size"`

	// MaxSteps bounds the number of retired instructions. Zero means no
	// limit.
	MaxSteps uint64 `yaml:"max_steps"`

	// FreqGHz is the clock of the simulated core.
	FreqGHz float64 `yaml:"freq_ghz"`
}

// Default returns the configuration of the reference machine.
func Default() Config {
	return Config{
		MemorySize: core.DefaultMemorySize,
		FreqGHz:    1,
	}
}

// WithMemorySize sets the number of cells.
func (c Config) WithMemorySize(n int) Config {
	c.MemorySize = n
	return c
}

// WithMaxSteps sets the step limit.
func (c Config) WithMaxSteps(n uint64) Config {
	c.MaxSteps = n
	return c
}

// WithFreqGHz sets the core clock.
func (c Config) WithFreqGHz(f float64) Config {
	c.FreqGHz = f
	return c
}

// LoadFromYAML reads a configuration file. Keys that are absent keep their
// default values.
func LoadFromYAML(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Validate checks that the configuration describes a usable machine.
func (c Config) Validate() error {
	if c.MemorySize <= 0 {
		return fmt.Errorf("memory_size must be positive, got %d", c.MemorySize)
	}
	if c.FreqGHz <= 0 {
		return fmt.Errorf("freq_ghz must be positive, got %g", c.FreqGHz)
	}
	return nil
}

// Freq returns the core clock for the simulation engine.
func (c Config) Freq() sim.Freq {
	return sim.Freq(c.FreqGHz) * sim.GHz
}

// RunOptions returns the interpreter options matching c.
func (c Config) RunOptions() []core.Option {
	return []core.Option{
		core.WithMemorySize(c.MemorySize),
		core.WithMaxSteps(c.MaxSteps),
	}
}

// CoreBuilder returns a core builder matching c.
func (c Config) CoreBuilder(engine sim.Engine) core.Builder {
	return core.NewBuilder().
		WithEngine(engine).
		WithFreq(c.Freq()).
		WithMemorySize(c.MemorySize).
		WithMaxSteps(c.MaxSteps)
}
