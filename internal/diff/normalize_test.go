package diff_test

import (
	"testing"

	"passlens/internal/diff"
	"passlens/internal/dump"
)

func TestNormalizeGimple(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  x_1 = a_2 + 1;", "x_# = a_# + 1;"},
		{"_12 = _3 * 4;", "_# = _# * 4;"},
		{"goto <bb 3>; [50.00%]", "goto <bb #>;"},
		{"D.2345 = foo (x_7);", "D.# = foo (x_#);"},
		{"if (i_4 <= 9)", "if (i_# <= 9)"},
		{"return;", "return;"},
	}
	for _, c := range cases {
		if got := diff.Normalize(c.in, dump.TierGimple); got != c.want {
			t.Fatalf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeRTL(t *testing.T) {
	cases := []struct{ in, want string }{
		{
			"(insn 7 4 19 2 (set (reg:SI 87)",
			"(insn # # # # (set (reg:SI #)",
		},
		{
			"(note 22 21 23 3 [bb 3] NOTE_INSN_BASIC_BLOCK)",
			"(note # # # # [bb #] NOTE_INSN_BASIC_BLOCK)",
		},
		{
			"            (label_ref 25)",
			"(label_ref #)",
		},
		{
			"(jump_insn 20 19 21 2 (set (pc)",
			"(jump_insn # # # # (set (pc)",
		},
	}
	for _, c := range cases {
		if got := diff.Normalize(c.in, dump.TierRTL); got != c.want {
			t.Fatalf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// Two spellings of the same statement differing only in renumbering must
// normalize identically.
func TestNormalizeFoldsRenumbering(t *testing.T) {
	pairs := [][2]string{
		{"x_1 = a_2 + 1;", "x_7 = a_9 + 1;"},
		{"goto <bb 3>;", "goto <bb 11>;"},
	}
	for _, p := range pairs {
		a := diff.Normalize(p[0], dump.TierGimple)
		b := diff.Normalize(p[1], dump.TierGimple)
		if a != b {
			t.Fatalf("renumbered forms differ: %q vs %q", a, b)
		}
	}
}
