package program

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Suite is a list of benchmark programs described in a YAML manifest.
type Suite struct {
	Cases []Case `yaml:"cases"`

	dir string
}

// Case is one program with its input and, optionally, the expected result.
type Case struct {
	Name           string  `yaml:"name"`
	Source         string  `yaml:"source,omitempty"`
	SourceFile     string  `yaml:"source_file,omitempty"`
	Input          string  `yaml:"input,omitempty"`
	InputFile      string  `yaml:"input_file,omitempty"`
	ExpectedOutput *string `yaml:"expected_output,omitempty"`
	ExpectedBytes  []byte  `yaml:"expected_bytes,omitempty"`
	ExpectedSteps  uint64  `yaml:"expected_steps,omitempty"`

	dir string
}

// LoadSuite reads the YAML manifest at path. Relative file names in the
// manifest are resolved against the manifest's directory.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	s, err := ParseSuite(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s.dir = filepath.Dir(path)
	for i := range s.Cases {
		s.Cases[i].dir = s.dir
	}

	return s, nil
}

// ParseSuite decodes a YAML manifest.
func ParseSuite(data []byte) (*Suite, error) {
	s := &Suite{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse suite: %w", err)
	}

	for i, c := range s.Cases {
		if c.Name == "" {
			return nil, fmt.Errorf("case %d has no name", i)
		}
		if c.Source != "" && c.SourceFile != "" {
			return nil, fmt.Errorf("case %q sets both source and source_file", c.Name)
		}
		if c.Input != "" && c.InputFile != "" {
			return nil, fmt.Errorf("case %q sets both input and input_file", c.Name)
		}
	}

	return s, nil
}

// Find returns the case with the given name.
func (s *Suite) Find(name string) (Case, bool) {
	for _, c := range s.Cases {
		if c.Name == name {
			return c, true
		}
	}
	return Case{}, false
}

// Program loads the case's program.
func (c Case) Program() (Program, error) {
	if c.SourceFile != "" {
		return LoadFile(c.resolve(c.SourceFile))
	}
	return Load(c.Source), nil
}

// Inputs loads the case's input queue.
func (c Case) Inputs() (*Inputs, error) {
	if c.InputFile != "" {
		return LoadInputFile(c.resolve(c.InputFile))
	}
	return ParseInputs(c.Input)
}

// Expected returns the expected output bytes, if the case declares any.
func (c Case) Expected() ([]byte, bool) {
	switch {
	case c.ExpectedOutput != nil:
		return []byte(*c.ExpectedOutput), true
	case c.ExpectedBytes != nil:
		return c.ExpectedBytes, true
	}
	return nil, false
}

func (c Case) resolve(name string) string {
	if filepath.IsAbs(name) || c.dir == "" {
		return name
	}
	return filepath.Join(c.dir, name)
}
