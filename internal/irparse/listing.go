package irparse

import "passlens/internal/dump"

// EdgeKind classifies an outgoing control-flow edge.
type EdgeKind uint8

const (
	EdgeFallthrough EdgeKind = iota
	EdgeTrue
	EdgeFalse
	EdgeUnconditional
	EdgeExceptional
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeFallthrough:
		return "fallthrough"
	case EdgeTrue:
		return "true"
	case EdgeFalse:
		return "false"
	case EdgeUnconditional:
		return "goto"
	case EdgeExceptional:
		return "eh"
	}
	return "unknown"
}

// Edge is a directed successor reference. To is the target block id as
// written in the dump; validity is checked by the CFG builder, not here.
type Edge struct {
	To   int
	Kind EdgeKind
}

// Statement is one line of a block's body. Opcode is the recognized leading
// token ("if", "goto", "call_insn", ...) or empty when nothing was recognized.
type Statement struct {
	Text   string
	Opcode string
	Line   int // 1-based line in the raw dump text
}

// Block is one basic block as written in the dump.
// IDs are stable only within a single snapshot: the compiler renumbers
// blocks between passes, so cross-pass matching never compares IDs.
type Block struct {
	ID    int
	Stmts []Statement
	Edges []Edge
}

// Listing is the parsed form of one (function, pass) dump.
// An empty Blocks slice is valid: it represents an empty or elided function.
type Listing struct {
	Tier   dump.Tier
	Blocks []Block
}

// BlockIndex returns the position of a block id within the listing, or -1.
func (l *Listing) BlockIndex(id int) int {
	for i := range l.Blocks {
		if l.Blocks[i].ID == id {
			return i
		}
	}
	return -1
}

// StatementCount returns the total number of statements across all blocks.
func (l *Listing) StatementCount() int {
	n := 0
	for i := range l.Blocks {
		n += len(l.Blocks[i].Stmts)
	}
	return n
}
