package core

import "github.com/sarchlab/bfzk/program"

// Tracer observes every retired instruction. pc is the position of the
// instruction and dataPtr the data pointer after it executed.
type Tracer interface {
	Retire(pc int, inst program.Command, dataPtr int)
}

// TracerFunc adapts a function to the Tracer interface.
type TracerFunc func(pc int, inst program.Command, dataPtr int)

// Retire calls f.
func (f TracerFunc) Retire(pc int, inst program.Command, dataPtr int) {
	f(pc, inst, dataPtr)
}
