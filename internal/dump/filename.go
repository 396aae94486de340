package dump

import (
	"regexp"
	"strconv"
)

// PassFile describes one dump file name parsed into its components.
type PassFile struct {
	Index int
	Tier  Tier
	Pass  string
}

// GCC names dump files `<src>.c.<NNN><t|r>.<passname>`, where NNN is the
// global pass number and t/r selects the tree (GIMPLE) or RTL tier.
var passFileRe = regexp.MustCompile(`\.(\d+)([tr])\.([A-Za-z0-9_.-]+)$`)

// ParsePassFile extracts the pass index, tier, and pass name from a dump
// file's base name. Returns false when the name does not match the grammar.
func ParsePassFile(base string) (PassFile, bool) {
	m := passFileRe.FindStringSubmatch(base)
	if m == nil {
		return PassFile{}, false
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil {
		return PassFile{}, false
	}
	tier := TierGimple
	if m[2] == "r" {
		tier = TierRTL
	}
	return PassFile{Index: idx, Tier: tier, Pass: m[3]}, true
}
