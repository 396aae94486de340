package observ_test

import (
	"strings"
	"testing"

	"passlens/internal/observ"
)

func TestTimerSummary(t *testing.T) {
	tm := observ.NewTimer()
	collect := tm.Begin("collect")
	tm.End(collect, "12 files")
	build := tm.Begin("build")
	tm.End(build, "")

	out := tm.Summary()
	for _, want := range []string{"timings:", "collect", "// 12 files", "build", "total"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	tm := observ.NewTimer()
	tm.End(3, "nope") // must not panic
	if out := tm.Summary(); !strings.Contains(out, "total") {
		t.Fatalf("summary = %q", out)
	}
}
