package core

import (
	"errors"
	"fmt"
)

var (
	// ErrMemoryBounds is matched by every *MemoryBoundsError.
	ErrMemoryBounds = errors.New("memory bounds error")

	// ErrStepLimit is matched by every *StepLimitError.
	ErrStepLimit = errors.New("step limit reached")
)

// MemoryBoundsError reports a data pointer that left the memory array.
// DataPtr is -1 when '<' was executed at cell 0.
type MemoryBoundsError struct {
	PC      int
	DataPtr int
	Size    int
}

func (e *MemoryBoundsError) Error() string {
	return fmt.Sprintf("data pointer %d outside memory of %d cells at PC %d",
		e.DataPtr, e.Size, e.PC)
}

func (e *MemoryBoundsError) Is(target error) bool {
	return target == ErrMemoryBounds
}

// StepLimitError reports a run stopped after retiring Limit instructions.
type StepLimitError struct {
	Limit uint64
	PC    int
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("stopped after %d instructions at PC %d", e.Limit, e.PC)
}

func (e *StepLimitError) Is(target error) bool {
	return target == ErrStepLimit
}
