package irparse

import (
	"regexp"
	"strconv"
	"strings"

	"passlens/internal/dump"
)

// RTL dumps delimit blocks with NOTE_INSN_BASIC_BLOCK notes carrying the
// block id in `[bb N]`, or with `;; basic block N` headers in later passes.
// Edges come from `;; Succ edge N [..] (FLAGS)` lines or bare `;; succs`
// lists. Statements are the top-level insn s-expressions.
var (
	rtlBasicBlockNoteRe = regexp.MustCompile(`\[bb (\d+)\].*NOTE_INSN_BASIC_BLOCK`)
	rtlHeaderRe         = regexp.MustCompile(`^;; basic block\s+(\d+)`)
	rtlSuccEdgeRe       = regexp.MustCompile(`^;;\s*Succ edge\s+(\d+)(.*)$`)
	rtlSuccsRe          = regexp.MustCompile(`^;;\s*(?:\d+\s+)?succs\s+(.*)$`)
	rtlInsnHeadRe       = regexp.MustCompile(`^\((insn|jump_insn|call_insn|code_label|barrier|note|debug_insn|jump_table_data)\b`)
)

type rtlParser struct {
	listing *Listing
	current *Block
	sawInsn bool
}

func parseRTL(text string) (*Listing, error) {
	p := &rtlParser{listing: &Listing{Tier: dump.TierRTL}}

	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			continue
		case rtlBasicBlockNoteRe.MatchString(line):
			id, _ := strconv.Atoi(rtlBasicBlockNoteRe.FindStringSubmatch(line)[1])
			p.startBlock(id)
		case rtlHeaderRe.MatchString(line):
			id, _ := strconv.Atoi(rtlHeaderRe.FindStringSubmatch(line)[1])
			p.startBlock(id)
		case strings.HasPrefix(line, ";;"):
			if m := rtlSuccEdgeRe.FindStringSubmatch(line); m != nil {
				p.succEdge(m)
			} else if m := rtlSuccsRe.FindStringSubmatch(line); m != nil {
				p.succList(m[1])
			}
		default:
			p.statement(line, lineNo)
		}
	}

	if len(p.listing.Blocks) == 0 && p.sawInsn {
		return nil, &MalformedError{
			Tier:   dump.TierRTL.String(),
			Reason: "insn content with no basic-block notes",
		}
	}
	p.classify()
	dropPseudoEdges(p.listing)
	return p.listing, nil
}

func (p *rtlParser) startBlock(id int) {
	p.listing.Blocks = append(p.listing.Blocks, Block{ID: id})
	p.current = &p.listing.Blocks[len(p.listing.Blocks)-1]
}

// succEdge applies one `;; Succ edge N [..] (FLAGS)` annotation.
func (p *rtlParser) succEdge(m []string) {
	if p.current == nil {
		return
	}
	to, _ := strconv.Atoi(m[1])
	kind := EdgeUnconditional
	flags := m[2]
	switch {
	case strings.Contains(flags, "FALLTHRU"):
		kind = EdgeFallthrough
	case strings.Contains(flags, "EH"), strings.Contains(flags, "ABNORMAL"):
		kind = EdgeExceptional
	}
	p.current.Edges = append(p.current.Edges, Edge{To: to, Kind: kind})
}

// succList applies a bare `;; succs 3 4` annotation; kinds are refined
// later from the block's terminating insn.
func (p *rtlParser) succList(rest string) {
	if p.current == nil {
		return
	}
	ids := intRe.FindAllString(stripEdgeProbabilities(rest), -1)
	p.current.Edges = p.current.Edges[:0]
	for _, s := range ids {
		to, _ := strconv.Atoi(s)
		p.current.Edges = append(p.current.Edges, Edge{To: to})
	}
}

func (p *rtlParser) statement(line string, lineNo int) {
	op := ""
	if m := rtlInsnHeadRe.FindStringSubmatch(line); m != nil {
		op = m[1]
		p.sawInsn = p.sawInsn || op != "note"
	}
	if p.current == nil {
		// Prologue insns before the first block note (deleted notes and
		// the like) carry no control flow; they are not part of any block.
		return
	}
	p.current.Stmts = append(p.current.Stmts, Statement{Text: line, Opcode: op, Line: lineNo})
}

// classify refines edge kinds once all blocks are read: a conditional jump
// (if_then_else) makes the non-fallthrough edge the true branch and the
// fallthrough the false branch.
func (p *rtlParser) classify() {
	for i := range p.listing.Blocks {
		b := &p.listing.Blocks[i]
		if !blockEndsInCondJump(b) {
			continue
		}
		for j := range b.Edges {
			switch b.Edges[j].Kind {
			case EdgeFallthrough:
				b.Edges[j].Kind = EdgeFalse
			case EdgeUnconditional:
				b.Edges[j].Kind = EdgeTrue
			}
		}
	}
}

func blockEndsInCondJump(b *Block) bool {
	// Continuation lines of a multi-line s-expression carry no opcode, so
	// look for the last insn head and scan its whole extent for the pattern.
	last := -1
	for i := len(b.Stmts) - 1; i >= 0; i-- {
		op := b.Stmts[i].Opcode
		if op == "" || op == "note" {
			continue
		}
		if op != "jump_insn" {
			return false
		}
		last = i
		break
	}
	if last < 0 {
		return false
	}
	for i := last; i < len(b.Stmts); i++ {
		if strings.Contains(b.Stmts[i].Text, "if_then_else") {
			return true
		}
	}
	return false
}
