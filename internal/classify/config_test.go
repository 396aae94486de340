package classify_test

import (
	"os"
	"path/filepath"
	"testing"

	"passlens/internal/classify"
	"passlens/internal/dump"
)

func writeRules(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.toml")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRules(t *testing.T) {
	path := writeRules(t, `
[[rule]]
kind = "structural-pattern"
category = "Dead Code Elimination"
[rule.structural]
block-decrease = true
hunk-removes = true

[[rule]]
kind = "token-pattern"
category = "Loop Optimization"
exclusive = false
scope = "added"
tokens = ["ivtmp"]
tier = "gimple"

[[rule]]
kind = "pass-name-hint"
category = "Register Allocation"
passes = ["ira", "lra"]
tier = "rtl"
`)
	rs, err := classify.LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(rs.Rules) != 3 {
		t.Fatalf("got %d rules, want 3", len(rs.Rules))
	}

	r0 := rs.Rules[0]
	if r0.Kind != classify.KindStructural || r0.Category != classify.DeadCodeElimination {
		t.Fatalf("rule 0 = %+v", r0)
	}
	if !r0.Exclusive {
		t.Fatal("exclusive must default to true")
	}
	if !r0.Structural.BlockDecrease || !r0.Structural.HunkRemoves {
		t.Fatalf("rule 0 structural = %+v", r0.Structural)
	}

	r1 := rs.Rules[1]
	if r1.Kind != classify.KindToken || r1.Exclusive || r1.Scope != classify.ScopeAdded {
		t.Fatalf("rule 1 = %+v", r1)
	}
	if r1.Tier == nil || *r1.Tier != dump.TierGimple {
		t.Fatalf("rule 1 tier = %v", r1.Tier)
	}

	r2 := rs.Rules[2]
	if r2.Kind != classify.KindPassName || len(r2.PassNames) != 2 {
		t.Fatalf("rule 2 = %+v", r2)
	}
	if r2.Tier == nil || *r2.Tier != dump.TierRTL {
		t.Fatalf("rule 2 tier = %v", r2.Tier)
	}
}

func TestLoadRulesRejectsBadConfig(t *testing.T) {
	cases := map[string]string{
		"unknown category": `
[[rule]]
kind = "token-pattern"
category = "Vectorization"
tokens = ["vec"]
`,
		"token rule without tokens": `
[[rule]]
kind = "token-pattern"
category = "Inlining"
`,
		"unknown kind": `
[[rule]]
kind = "regex-pattern"
category = "Inlining"
`,
		"unknown tier": `
[[rule]]
kind = "pass-name-hint"
category = "Inlining"
passes = ["einline"]
tier = "mir"
`,
		"no rules": `# empty`,
	}
	for name, text := range cases {
		if _, err := classify.LoadRules(writeRules(t, text)); err == nil {
			t.Fatalf("%s: want an error", name)
		}
	}
}
