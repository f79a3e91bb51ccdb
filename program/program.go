// Package program loads source programs and their input data, and resolves
// the loop structure shared by the interpreter and the compiler.
package program

import (
	"fmt"
	"os"
	"strings"
)

// Command is a single instruction code. Its value is the code point of the
// source symbol, so a Program can be handed to consumers that expect the raw
// symbol values.
type Command uint32

// The eight commands and the terminator.
const (
	Terminator Command = 0
	IncPtr     Command = '>'
	DecPtr     Command = '<'
	IncCell    Command = '+'
	DecCell    Command = '-'
	Read       Command = ','
	Write      Command = '.'
	LoopOpen   Command = '['
	LoopClose  Command = ']'
)

const symbols = "><+-.,[]"

// IsCommand reports whether r is one of the eight command symbols.
func IsCommand(r rune) bool {
	return strings.ContainsRune(symbols, r)
}

func (c Command) String() string {
	if c == Terminator {
		return "END"
	}
	return string(rune(c))
}

// Program is an immutable sequence of commands that always ends with the
// Terminator.
type Program struct {
	code []Command
}

// Load keeps the command symbols of source in their original order and
// appends the terminator. Every other character is ignored.
func Load(source string) Program {
	code := make([]Command, 0, len(source)+1)
	for _, r := range source {
		if IsCommand(r) {
			code = append(code, Command(r))
		}
	}
	code = append(code, Terminator)

	return Program{code: code}
}

// LoadFile reads the program at path.
func LoadFile(path string) (Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Program{}, fmt.Errorf("failed to read program file: %w", err)
	}

	return Load(string(data)), nil
}

// Len returns the number of positions, including the terminator.
func (p Program) Len() int {
	if p.code == nil {
		return 1
	}
	return len(p.code)
}

// At returns the command at pc. Positions at or after the end of the program
// read as the terminator.
func (p Program) At(pc int) Command {
	if pc < 0 || pc >= len(p.code) {
		return Terminator
	}
	return p.code[pc]
}

// Commands returns a copy of the commands, without the terminator.
func (p Program) Commands() []Command {
	if len(p.code) == 0 {
		return nil
	}
	out := make([]Command, len(p.code)-1)
	copy(out, p.code)
	return out
}

// Codes returns the raw instruction codes, terminator included.
func (p Program) Codes() []uint32 {
	out := make([]uint32, 0, p.Len())
	for _, c := range p.code {
		out = append(out, uint32(c))
	}
	if len(out) == 0 {
		out = append(out, uint32(Terminator))
	}
	return out
}

// Empty reports whether the program has no commands.
func (p Program) Empty() bool {
	return p.Len() == 1
}

// String renders the filtered source.
func (p Program) String() string {
	var sb strings.Builder
	for _, c := range p.Commands() {
		sb.WriteRune(rune(c))
	}
	return sb.String()
}
