// Package observ provides lightweight phase timing for the dump pipeline.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase records the duration and metadata of one pipeline phase
// (collect, parse, diff, categorize, ...).
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the execution time of multiple pipeline phases.
type Timer struct {
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index, attaching an optional note.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Summary returns a human-readable report of all tracked phases.
func (t *Timer) Summary() string {
	var out strings.Builder
	out.WriteString("timings:\n")
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
		fmt.Fprintf(&out, "  %-20s %7.2f ms", p.Name, millis(p.Dur))
		if p.Note != "" {
			out.WriteString("  // " + p.Note)
		}
		out.WriteByte('\n')
	}
	fmt.Fprintf(&out, "  %-20s %7.2f ms\n", "total", millis(total))
	return out.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
