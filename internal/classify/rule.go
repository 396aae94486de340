package classify

import (
	"sort"
	"strings"

	"passlens/internal/diff"
	"passlens/internal/dump"
)

// RuleKind selects which signals a rule examines.
type RuleKind uint8

const (
	// KindStructural matches the delta's block/edge summary and the
	// hunk's structural annotation.
	KindStructural RuleKind = iota
	// KindToken matches lowercase substrings against changed line text.
	KindToken
	// KindPassName matches substrings against the pass that produced the
	// delta. A weak prior: declared after token and structural rules.
	KindPassName
)

// TokenScope restricts which hunk kinds a token rule examines.
type TokenScope uint8

const (
	ScopeAny TokenScope = iota
	ScopeAdded
	ScopeRemoved
)

// Structural is the pattern a KindStructural rule requires. All set fields
// must hold for the rule to match.
type Structural struct {
	BlockDecrease bool   // summary block count went down
	BlockIncrease bool   // summary block count went up
	CallRemoved   bool   // the hunk removes a call statement
	HunkRemoves   bool   // the hunk is a removal
	BlockNote     string // required hunk annotation, e.g. "block merged"
}

// Rule is one entry of the ordered table.
type Rule struct {
	Kind     RuleKind
	Category Category

	// Exclusive stops rule evaluation for the hunk once matched.
	// Non-exclusive rules let later rules accumulate more categories.
	Exclusive bool

	// Tier limits the rule to one IR tier; nil applies to both.
	Tier *dump.Tier

	Tokens     []string   // KindToken: lowercase substrings
	Scope      TokenScope // KindToken
	PassNames  []string   // KindPassName: substrings of the pass name
	Structural Structural // KindStructural
}

// RuleSet is an ordered rule table. Order is priority: earlier rules win.
type RuleSet struct {
	Rules []Rule
}

// Result holds the categories assigned to one delta.
type Result struct {
	// PerHunk is parallel to the delta's hunks. Every entry is non-empty:
	// hunks nothing matched carry the Other fallback.
	PerHunk [][]Category

	// All is the sorted union of categories over changed hunks.
	All []Category
}

// Has reports whether any changed hunk carries the category.
func (r *Result) Has(c Category) bool {
	for _, got := range r.All {
		if got == c {
			return true
		}
	}
	return false
}

// Categorize assigns categories to every hunk of a delta. passName is the
// pass that produced the after-snapshot; tier is the snapshot's IR tier.
// Unchanged hunks carry no transformation evidence and go straight to the
// Other fallback.
func (rs *RuleSet) Categorize(d *diff.Delta, passName string, tier dump.Tier) *Result {
	res := &Result{PerHunk: make([][]Category, len(d.Hunks))}
	seen := make(map[Category]bool)

	for i := range d.Hunks {
		h := &d.Hunks[i]
		if h.Kind == diff.HunkUnchanged {
			res.PerHunk[i] = []Category{Other}
			continue
		}
		cats := rs.categorizeHunk(h, &d.Summary, passName, tier)
		res.PerHunk[i] = cats
		for _, c := range cats {
			if c != Other && !seen[c] {
				seen[c] = true
				res.All = append(res.All, c)
			}
		}
	}

	if len(res.All) == 0 && d.Changed() {
		res.All = []Category{Other}
	}
	sort.Slice(res.All, func(i, j int) bool { return res.All[i] < res.All[j] })
	return res
}

func (rs *RuleSet) categorizeHunk(h *diff.Hunk, sum *diff.Summary, passName string, tier dump.Tier) []Category {
	var cats []Category
	have := make(map[Category]bool)
	for i := range rs.Rules {
		r := &rs.Rules[i]
		if r.Tier != nil && *r.Tier != tier {
			continue
		}
		if !r.matches(h, sum, passName) {
			continue
		}
		if !have[r.Category] {
			have[r.Category] = true
			cats = append(cats, r.Category)
		}
		if r.Exclusive {
			break
		}
	}
	if len(cats) == 0 {
		cats = []Category{Other}
	}
	return cats
}

func (r *Rule) matches(h *diff.Hunk, sum *diff.Summary, passName string) bool {
	switch r.Kind {
	case KindStructural:
		return r.Structural.matches(h, sum)
	case KindToken:
		return r.matchTokens(h)
	case KindPassName:
		lower := strings.ToLower(passName)
		for _, p := range r.PassNames {
			if strings.Contains(lower, p) {
				return true
			}
		}
	}
	return false
}

func (r *Rule) matchTokens(h *diff.Hunk) bool {
	if r.Scope == ScopeAdded && h.Kind != diff.HunkAdded {
		return false
	}
	if r.Scope == ScopeRemoved && h.Kind != diff.HunkRemoved {
		return false
	}
	for _, line := range h.Lines {
		lower := strings.ToLower(line)
		for _, tok := range r.Tokens {
			if strings.Contains(lower, tok) {
				return true
			}
		}
	}
	return false
}

func (s *Structural) matches(h *diff.Hunk, sum *diff.Summary) bool {
	if s.BlockDecrease && sum.BlockDelta() >= 0 {
		return false
	}
	if s.BlockIncrease && sum.BlockDelta() <= 0 {
		return false
	}
	if s.HunkRemoves && h.Kind != diff.HunkRemoved {
		return false
	}
	if s.CallRemoved && !(h.Kind == diff.HunkRemoved && hasCallLine(h.Lines)) {
		return false
	}
	if s.BlockNote != "" && h.BlockNote != s.BlockNote {
		return false
	}
	return true
}

// hasCallLine spots call statements in either tier's spelling.
func hasCallLine(lines []string) bool {
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "(call_insn") {
			return true
		}
		if gimpleCallish(line) {
			return true
		}
	}
	return false
}

func gimpleCallish(line string) bool {
	s := strings.TrimSpace(line)
	if !strings.HasSuffix(s, ";") {
		return false
	}
	open := strings.IndexByte(s, '(')
	if open <= 0 {
		return false
	}
	head := strings.TrimSpace(s[:open])
	if eq := strings.LastIndex(head, "= "); eq >= 0 {
		head = strings.TrimSpace(head[eq+2:])
	}
	if head == "" || head == "if" || head == "while" || head == "switch" || head == "return" {
		return false
	}
	for _, r := range head {
		if !(r == '_' || r == '.' || r == '$' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}
