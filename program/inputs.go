package program

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EOF is the value a read produces once the input queue is exhausted.
const EOF int64 = -1

// Inputs is a first-in-first-out queue of input values. The zero value is an
// empty queue.
type Inputs struct {
	values []uint32
	head   int
}

// NewInputs creates a queue holding values in order.
func NewInputs(values ...uint32) *Inputs {
	in := &Inputs{values: make([]uint32, len(values))}
	copy(in.values, values)
	return in
}

// ParseInputs parses a comma-separated list of unsigned 32-bit decimals.
// Surrounding whitespace is trimmed and empty fields are skipped.
func ParseInputs(text string) (*Inputs, error) {
	in := &Inputs{}

	index := 0
	for _, field := range strings.Split(text, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		v, err := strconv.ParseUint(field, 10, 32)
		if err != nil {
			return nil, &ParseError{Index: index, Field: field, Err: err}
		}

		in.values = append(in.values, uint32(v))
		index++
	}

	return in, nil
}

// LoadInputFile reads and parses the input file at path.
func LoadInputFile(path string) (*Inputs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	return ParseInputs(string(data))
}

// Pop removes the next value. It returns EOF and false if the queue is empty.
func (in *Inputs) Pop() (int64, bool) {
	if in == nil || in.head >= len(in.values) {
		return EOF, false
	}

	v := in.values[in.head]
	in.head++

	return int64(v), true
}

// Len returns the number of values not yet consumed.
func (in *Inputs) Len() int {
	if in == nil {
		return 0
	}
	return len(in.values) - in.head
}

// Values returns the values not yet consumed.
func (in *Inputs) Values() []uint32 {
	if in == nil {
		return nil
	}
	out := make([]uint32, in.Len())
	copy(out, in.values[in.head:])
	return out
}

// Clone returns an independent queue with the same remaining values.
func (in *Inputs) Clone() *Inputs {
	return NewInputs(in.Values()...)
}
