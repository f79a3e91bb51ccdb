package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	PrintToggle            = false
	LevelTrace  slog.Level = slog.LevelInfo + 1
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// DumpMemory renders the cells around dataPtr as a table. window is the
// number of rows of eight cells shown on each side of the data pointer row.
func DumpMemory(w io.Writer, memory []int64, dataPtr int, window int) {
	const rowWidth = 8

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("Memory (dp=%d, %d cells)", dataPtr, len(memory)))

	header := table.Row{"Addr"}
	for col := 0; col < rowWidth; col++ {
		header = append(header, fmt.Sprintf("+%d", col))
	}
	t.AppendHeader(header)

	center := dataPtr / rowWidth
	if dataPtr < 0 {
		center = 0
	}

	for row := center - window; row <= center+window; row++ {
		base := row * rowWidth
		if base < 0 || base >= len(memory) {
			continue
		}

		r := table.Row{base}
		for col := 0; col < rowWidth; col++ {
			addr := base + col
			switch {
			case addr >= len(memory):
				r = append(r, "")
			case addr == dataPtr:
				r = append(r, fmt.Sprintf("[%d]", memory[addr]))
			default:
				r = append(r, memory[addr])
			}
		}
		t.AppendRow(r)
	}

	t.Render()
}

func PrintState(state *coreState) {
	if !PrintToggle {
		return
	}

	fmt.Printf("==============State@PC %d==============\n", state.PC)
	fmt.Printf("Inst: %s  Steps: %d  Loop depth: %d\n",
		state.Code.At(state.PC), state.Steps, len(state.LoopStack))
	DumpMemory(os.Stdout, state.Memory, state.DataPtr, 2)
	fmt.Println("================================================")
}

func LogState(state *coreState) {
	slog.Debug("StateCheckpoint",
		"PC", state.PC,
		"Inst", state.Code.At(state.PC).String(),
		"DataPtr", state.DataPtr,
		"Steps", state.Steps,
		"LoopStack", state.LoopStack,
		"Output", len(state.Output),
	)
	PrintState(state)
}
