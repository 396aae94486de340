package irparse

import (
	"regexp"
	"strconv"
	"strings"

	"passlens/internal/dump"
)

// GIMPLE dumps mark blocks two ways depending on the pass:
// `;; basic block N, preds: ...` headers in cfg-style dumps, and
// `<bb N> :` labels in function-body dumps. Successors appear either as
// `;; N succs { ... }` / `;; succs ...` annotations or as explicit
// goto statements in the block body.
var (
	gimpleHeaderRe = regexp.MustCompile(`^;; basic block (\d+)`)
	gimpleLabelRe  = regexp.MustCompile(`^<bb (\d+)>`)
	gimpleSuccsRe  = regexp.MustCompile(`^;;\s*(?:(\d+)\s+)?succs?:?\s+(.*)$`)
	gimpleContRe   = regexp.MustCompile(`^;;[\s\d{}()\[\].%]*\d[\s\d{}()\[\].%]*$`)
	gimpleGotoRe   = regexp.MustCompile(`goto <bb (\d+)>`)
	gimpleCallRe   = regexp.MustCompile(`^(?:[\w.$]+\s*=\s*)?[\w.$]+\s*\(.*\);`)
	intRe          = regexp.MustCompile(`\d+`)
)

type gimpleParser struct {
	listing   *Listing
	current   *Block
	annotated bool // current block's successors came from a ;; succs line
	contSucc  bool // the previous line was part of a succ list
	inElse    bool
	sawStmt   bool
}

func parseGimple(text string) (*Listing, error) {
	p := &gimpleParser{listing: &Listing{Tier: dump.TierGimple}}

	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		switch {
		case line == "" || line == "{" || line == "}":
			continue
		case gimpleHeaderRe.MatchString(line):
			id, _ := strconv.Atoi(gimpleHeaderRe.FindStringSubmatch(line)[1])
			p.startBlock(id)
		case gimpleLabelRe.MatchString(line):
			id, _ := strconv.Atoi(gimpleLabelRe.FindStringSubmatch(line)[1])
			p.startBlock(id)
		case strings.HasPrefix(line, ";;"):
			if m := gimpleSuccsRe.FindStringSubmatch(line); m != nil {
				if err := p.succs(m, lineNo); err != nil {
					return nil, err
				}
				p.contSucc = p.annotated
				continue
			}
			// Newer dumps wrap long succ lists: bare numeric ;; lines right
			// after a succ annotation continue it.
			if p.contSucc && p.current != nil && gimpleContRe.MatchString(line) {
				p.appendSuccIDs(line)
				continue
			}
			p.contSucc = false
			// Other ;; lines are compiler diagnostics: skipped, never fatal.
		case p.current != nil:
			p.statement(line, lineNo)
		default:
			// Prologue before the first block (declarations, signature).
			p.sawStmt = p.sawStmt || looksLikeStatement(line)
		}
	}

	if len(p.listing.Blocks) == 0 && p.sawStmt {
		return nil, &MalformedError{
			Tier:   dump.TierGimple.String(),
			Reason: "statement content with no basic-block delimiters",
		}
	}
	p.finish()
	dropPseudoEdges(p.listing)
	return p.listing, nil
}

func (p *gimpleParser) startBlock(id int) {
	p.finish()
	p.listing.Blocks = append(p.listing.Blocks, Block{ID: id})
	p.current = &p.listing.Blocks[len(p.listing.Blocks)-1]
	p.annotated = false
	p.contSucc = false
	p.inElse = false
}

// succs applies a `;; [N] succs ...` annotation. The optional leading number
// names the block; without it the annotation belongs to the current block.
func (p *gimpleParser) succs(m []string, lineNo int) error {
	target := p.current
	if m[1] != "" {
		id, _ := strconv.Atoi(m[1])
		idx := p.listing.BlockIndex(id)
		if idx < 0 {
			// Annotation for a block this dump never declared: tolerated,
			// the structural check at the end still catches empty dumps.
			return nil
		}
		target = &p.listing.Blocks[idx]
	}
	if target == nil {
		return &MalformedError{
			Tier:   dump.TierGimple.String(),
			Line:   lineNo,
			Reason: "successor annotation outside any basic block",
		}
	}
	// The annotation supersedes goto-derived edges; the first annotation
	// line clears them, later `;; succ:` lines for the same block append.
	if target != p.current || !p.annotated {
		target.Edges = target.Edges[:0]
	}
	ids := intRe.FindAllString(stripEdgeProbabilities(m[2]), -1)
	for _, s := range ids {
		to, _ := strconv.Atoi(s)
		target.Edges = append(target.Edges, Edge{To: to})
	}
	if target == p.current {
		p.annotated = true
	} else {
		// The named block is already closed: classify its edges now.
		classifyAnnotatedEdges(target)
	}
	return nil
}

// appendSuccIDs extends the current block's annotated successor list with
// the ids on a continuation line.
func (p *gimpleParser) appendSuccIDs(line string) {
	for _, s := range intRe.FindAllString(stripEdgeProbabilities(strings.TrimPrefix(line, ";;")), -1) {
		to, _ := strconv.Atoi(s)
		p.current.Edges = append(p.current.Edges, Edge{To: to})
	}
}

func (p *gimpleParser) statement(line string, lineNo int) {
	p.contSucc = false
	op := gimpleOpcode(line)
	p.current.Stmts = append(p.current.Stmts, Statement{Text: line, Opcode: op, Line: lineNo})

	switch op {
	case "else":
		p.inElse = true
	case "goto":
		if p.annotated {
			return
		}
		if m := gimpleGotoRe.FindStringSubmatch(line); m != nil {
			to, _ := strconv.Atoi(m[1])
			p.current.Edges = append(p.current.Edges, Edge{To: to, Kind: p.gotoKind()})
			p.inElse = false
		}
	}
}

// gotoKind decides the edge kind of a goto given the block parsed so far:
// the first goto after an `if` is the true edge, the goto in the else arm
// is the false edge, a bare goto is unconditional. The goto statement
// itself is already appended, so the scan starts one before it.
func (p *gimpleParser) gotoKind() EdgeKind {
	if p.inElse {
		return EdgeFalse
	}
	for i := len(p.current.Stmts) - 2; i >= 0; i-- {
		switch p.current.Stmts[i].Opcode {
		case "if":
			return EdgeTrue
		case "goto", "else":
			return EdgeUnconditional
		}
	}
	return EdgeUnconditional
}

// finish classifies annotation-sourced edges of the block being closed.
func (p *gimpleParser) finish() {
	b := p.current
	p.current = nil
	if b == nil || !p.annotated {
		return
	}
	classifyAnnotatedEdges(b)
}

// classifyAnnotatedEdges assigns kinds to edges that came from a bare
// `;; succs` list: a conditional tail makes the first two edges true/false,
// a goto tail makes the edge unconditional, anything else falls through.
func classifyAnnotatedEdges(b *Block) {
	last := ""
	for i := len(b.Stmts) - 1; i >= 0; i-- {
		if b.Stmts[i].Opcode != "" {
			last = b.Stmts[i].Opcode
			break
		}
	}
	switch {
	case last == "if" || containsOpcode(b, "if"):
		if len(b.Edges) >= 1 {
			b.Edges[0].Kind = EdgeTrue
		}
		if len(b.Edges) >= 2 {
			b.Edges[1].Kind = EdgeFalse
		}
	case last == "goto":
		for i := range b.Edges {
			b.Edges[i].Kind = EdgeUnconditional
		}
	default:
		for i := range b.Edges {
			b.Edges[i].Kind = EdgeFallthrough
		}
	}
}

func containsOpcode(b *Block, op string) bool {
	for i := range b.Stmts {
		if b.Stmts[i].Opcode == op {
			return true
		}
	}
	return false
}

// gimpleOpcode recognizes the leading token of a GIMPLE statement.
func gimpleOpcode(line string) string {
	head := line
	if i := strings.IndexAny(head, " (\t"); i >= 0 {
		head = head[:i]
	}
	switch head {
	case "if", "goto", "return", "switch", "else", "case", "default":
		return head
	}
	if gimpleCallRe.MatchString(line) {
		return "call"
	}
	if strings.Contains(line, " = ") {
		return "assign"
	}
	return ""
}

// stripEdgeProbabilities removes `[50.0%]`-style annotations and count
// suffixes so they are not mistaken for block ids.
func stripEdgeProbabilities(s string) string {
	var out strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '[', '(':
			depth++
		case ']', ')':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				out.WriteRune(r)
			}
		}
	}
	return out.String()
}

// looksLikeStatement reports whether a line outside any block reads as code
// rather than a declaration or signature; used to detect dumps whose block
// delimiters are missing entirely.
func looksLikeStatement(line string) bool {
	if strings.Contains(line, "goto <bb") {
		return true
	}
	return strings.HasSuffix(line, ";") && (strings.Contains(line, " = ") || strings.HasPrefix(line, "if "))
}
