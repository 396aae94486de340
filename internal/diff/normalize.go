package diff

import (
	"regexp"
	"strings"

	"passlens/internal/dump"
)

// The compiler renumbers blocks, SSA temporaries, and insn uids freely
// between passes. Each rewrite below folds one renumbering family into a
// fixed placeholder so the line diff only reacts to real changes.
var (
	wsRe        = regexp.MustCompile(`\s+`)
	bbRefRe     = regexp.MustCompile(`<bb \d+>`)
	bbBracketRe = regexp.MustCompile(`\[bb \d+\]`)
	ssaTempRe   = regexp.MustCompile(`_\d+\b`) // anonymous temps and SSA version suffixes alike
	gimpleDRe   = regexp.MustCompile(`\bD\.\d+\b`)
	insnHeadRe  = regexp.MustCompile(`^\((insn|jump_insn|call_insn|code_label|note|debug_insn|barrier)(\s+-?\d+)+`)
	labelRefRe  = regexp.MustCompile(`\(label_ref(:\w+)? -?\d+`)
	regNumRe    = regexp.MustCompile(`\(reg(:\w+)? \d{2,}`)
	probRe      = regexp.MustCompile(`\[\d+(\.\d+)?%\]`)
	countRe     = regexp.MustCompile(`\(guessed[^)]*\)|\[count: [^\]]*\]`)
)

// Normalize rewrites one statement line into its diff-stable form.
func Normalize(line string, tier dump.Tier) string {
	s := strings.TrimSpace(line)
	s = probRe.ReplaceAllString(s, "")
	s = countRe.ReplaceAllString(s, "")
	s = bbRefRe.ReplaceAllString(s, "<bb #>")
	s = bbBracketRe.ReplaceAllString(s, "[bb #]")
	if tier == dump.TierRTL {
		s = insnHeadRe.ReplaceAllStringFunc(s, normalizeInsnHead)
		s = labelRefRe.ReplaceAllStringFunc(s, func(m string) string {
			return numTailRe.ReplaceAllString(m, " #")
		})
		s = regNumRe.ReplaceAllStringFunc(s, func(m string) string {
			return numTailRe.ReplaceAllString(m, " #")
		})
	} else {
		s = ssaTempRe.ReplaceAllString(s, "_#")
		s = gimpleDRe.ReplaceAllString(s, "D.#")
	}
	s = wsRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

var numTailRe = regexp.MustCompile(`\s+-?\d+$`)

// normalizeInsnHead folds the positional uid/prev/next/bb numbers of an
// insn head into placeholders, keeping the insn kind.
func normalizeInsnHead(m string) string {
	fields := strings.Fields(m)
	if len(fields) == 0 {
		return m
	}
	out := fields[0]
	for range fields[1:] {
		out += " #"
	}
	return out
}
