package program

// JumpTable maps every loop bracket to its partner, in both directions.
// It is built once per Program and never modified afterwards.
type JumpTable struct {
	partner []int // -1 for non-bracket positions
	pairs   int
	depth   int
}

// Resolve matches every '[' with its ']' in a single pass. It is the only
// place where bracket structure is validated.
func Resolve(p Program) (*JumpTable, error) {
	jt := &JumpTable{partner: make([]int, p.Len())}
	for i := range jt.partner {
		jt.partner[i] = -1
	}

	var open []int
	for pc := 0; pc < p.Len(); pc++ {
		switch p.At(pc) {
		case LoopOpen:
			open = append(open, pc)
			if len(open) > jt.depth {
				jt.depth = len(open)
			}
		case LoopClose:
			if len(open) == 0 {
				return nil, &UnmatchedBracketError{Pos: pc, Symbol: LoopClose}
			}

			start := open[len(open)-1]
			open = open[:len(open)-1]

			jt.partner[start] = pc
			jt.partner[pc] = start
			jt.pairs++
		}
	}

	if len(open) > 0 {
		return nil, &UnmatchedBracketError{
			Pos:    open[len(open)-1],
			Symbol: LoopOpen,
		}
	}

	return jt, nil
}

// Match returns the position of the bracket paired with the one at pc.
func (jt *JumpTable) Match(pc int) (int, bool) {
	if jt == nil || pc < 0 || pc >= len(jt.partner) || jt.partner[pc] < 0 {
		return 0, false
	}
	return jt.partner[pc], true
}

// Pairs returns the number of loops.
func (jt *JumpTable) Pairs() int {
	return jt.pairs
}

// Depth returns the maximum loop nesting depth.
func (jt *JumpTable) Depth() int {
	return jt.depth
}

// Covers reports whether the table was built for a program of p's length.
func (jt *JumpTable) Covers(p Program) bool {
	return jt != nil && len(jt.partner) == p.Len()
}
