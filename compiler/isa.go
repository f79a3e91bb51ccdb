package compiler

// Mnemonic names an instruction of the target machine.
type Mnemonic string

// The instruction vocabulary the target machine must support. A is the only
// general register; the data pointer and the input cursor are implicit.
const (
	IncDP   Mnemonic = "INC_DP"
	DecDP   Mnemonic = "DEC_DP"
	IncCell Mnemonic = "INC_CELL"
	DecCell Mnemonic = "DEC_CELL"
	Load    Mnemonic = "LOAD"
	Store   Mnemonic = "STORE"
	Read    Mnemonic = "READ"
	IncIn   Mnemonic = "INC_IN"
	Write   Mnemonic = "WRITE"
	BZ      Mnemonic = "BZ"
	JMP     Mnemonic = "JMP"
	RET     Mnemonic = "RET"
)

// RegA is the register used to move cell values.
const RegA = "A"

// InstSpec describes one instruction of the vocabulary.
type InstSpec struct {
	Name     Mnemonic
	Operands int
	Summary  string
}

var isa = []InstSpec{
	{IncDP, 0, "dp <- dp + 1"},
	{DecDP, 0, "dp <- dp - 1"},
	{IncCell, 0, "mem[dp] <- mem[dp] + 1"},
	{DecCell, 0, "mem[dp] <- mem[dp] - 1"},
	{Load, 1, "reg <- mem[dp]"},
	{Store, 1, "mem[dp] <- reg"},
	{Read, 1, "reg <- input[in], or -1 past the end"},
	{IncIn, 0, "in <- in + 1"},
	{Write, 1, "append low byte of reg to the output"},
	{BZ, 2, "branch to label if reg is zero"},
	{JMP, 1, "jump to label"},
	{RET, 0, "halt"},
}

// ISA returns the instruction vocabulary in a fixed order.
func ISA() []InstSpec {
	out := make([]InstSpec, len(isa))
	copy(out, isa)
	return out
}

// Lookup describes the named instruction.
func Lookup(name Mnemonic) (InstSpec, bool) {
	for _, s := range isa {
		if s.Name == name {
			return s, true
		}
	}
	return InstSpec{}, false
}
