package diag

import "fmt"

// Locus pins a diagnostic to a position within a compilation run:
// which function, which pass, and optionally which line of the raw dump.
// Zero-value fields mean "not applicable" (e.g. EmptyInput has no pass).
type Locus struct {
	Function  string
	PassName  string
	PassIndex int
	Line      int // 1-based line in the raw dump text, 0 if unknown
}

func (l Locus) String() string {
	out := l.Function
	if out == "" {
		out = "<run>"
	}
	if l.PassName != "" {
		out += fmt.Sprintf(" @ %03d.%s", l.PassIndex, l.PassName)
	}
	if l.Line > 0 {
		out += fmt.Sprintf(":%d", l.Line)
	}
	return out
}

// Before orders loci by function, then pass index, then line.
func (l Locus) Before(other Locus) bool {
	if l.Function != other.Function {
		return l.Function < other.Function
	}
	if l.PassIndex != other.PassIndex {
		return l.PassIndex < other.PassIndex
	}
	return l.Line < other.Line
}
