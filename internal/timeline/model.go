// Package timeline assembles the per-function sequence of (pass, CFG,
// delta, categories) the presentation layer walks. A model is built once
// per compilation run and is immutable afterwards; a new run replaces the
// whole model, never mutates it.
package timeline

import (
	"sort"

	"passlens/internal/cfg"
	"passlens/internal/classify"
	"passlens/internal/diag"
	"passlens/internal/diff"
	"passlens/internal/dump"
	"passlens/internal/irparse"
)

// Entry is one timeline position: a snapshot plus the delta from its
// predecessor. The first snapshot of a tier has a nil Delta: it is the
// timeline's initial state.
type Entry struct {
	Record  dump.Record
	Listing *irparse.Listing
	Graph   *cfg.Graph

	// Delta and Categories relate this snapshot to the previous one in
	// the same tier. Nil for the initial entry and for entries whose
	// predecessor is unavailable.
	Delta      *diff.Delta
	Categories *classify.Result

	// Failure marks this position unavailable: the snapshot failed to
	// parse or validate. Listing and Graph are nil when set.
	Failure *diag.Diagnostic
}

// Unavailable reports whether this position holds a failure marker.
func (e *Entry) Unavailable() bool {
	return e.Failure != nil
}

// Function is one function's complete timeline, partitioned by IR tier.
type Function struct {
	Name   string
	Gimple []Entry
	RTL    []Entry

	// Failure marks the whole function unavailable (sequencing conflict
	// or no input); both tiers are empty when set.
	Failure *diag.Diagnostic
}

// Tier returns the entries for one IR tier.
func (f *Function) Tier(t dump.Tier) []Entry {
	if t == dump.TierRTL {
		return f.RTL
	}
	return f.Gimple
}

// At returns the entry with the given pass index, searching both tiers.
func (f *Function) At(passIndex int) *Entry {
	for i := range f.Gimple {
		if f.Gimple[i].Record.Index == passIndex {
			return &f.Gimple[i]
		}
	}
	for i := range f.RTL {
		if f.RTL[i].Record.Index == passIndex {
			return &f.RTL[i]
		}
	}
	return nil
}

// Model is the queryable result of processing one compilation run.
type Model struct {
	byName map[string]*Function
	names  []string
}

// Function looks a function up by name.
func (m *Model) Function(name string) (*Function, bool) {
	f, ok := m.byName[name]
	return f, ok
}

// Functions returns all function names in sorted order.
func (m *Model) Functions() []string {
	return m.names
}

// Len returns the number of functions in the model.
func (m *Model) Len() int {
	return len(m.names)
}

func newModel(funcs []*Function) *Model {
	m := &Model{byName: make(map[string]*Function, len(funcs))}
	for _, f := range funcs {
		if f == nil {
			continue
		}
		m.byName[f.Name] = f
		m.names = append(m.names, f.Name)
	}
	sort.Strings(m.names)
	return m
}
