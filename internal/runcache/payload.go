package runcache

import (
	"passlens/internal/timeline"
)

// Payload is the cached summary of one processed run: per function, per
// timeline position, the delta statistics and category names the timeline
// view prints. Raw text, listings, and hunks are not cached; commands that
// need them recompute from the dumps.
type Payload struct {
	Schema    uint16
	Functions []FunctionSummary
}

// FunctionSummary is one function's cached timeline.
type FunctionSummary struct {
	Name    string
	Failed  bool
	Failure string
	Entries []EntrySummary
}

// EntrySummary is one cached timeline position.
type EntrySummary struct {
	Pass  string
	Index int
	Tier  uint8

	Failed  bool
	Failure string

	Blocks int
	Edges  int

	// Delta stats against the previous position; zero for initial entries.
	Added      int
	Removed    int
	BlockDelta int
	EdgeDelta  int
	Categories []string
}

// Summarize flattens a model into its cacheable payload.
func Summarize(m *timeline.Model) *Payload {
	p := &Payload{}
	for _, name := range m.Functions() {
		fn, _ := m.Function(name)
		fs := FunctionSummary{Name: name}
		if fn.Failure != nil {
			fs.Failed = true
			fs.Failure = fn.Failure.Message
		}
		for _, entries := range [][]timeline.Entry{fn.Gimple, fn.RTL} {
			for i := range entries {
				fs.Entries = append(fs.Entries, summarizeEntry(&entries[i]))
			}
		}
		p.Functions = append(p.Functions, fs)
	}
	return p
}

func summarizeEntry(e *timeline.Entry) EntrySummary {
	es := EntrySummary{
		Pass:  e.Record.Pass,
		Index: e.Record.Index,
		Tier:  uint8(e.Record.Tier),
	}
	if e.Failure != nil {
		es.Failed = true
		es.Failure = e.Failure.Message
		return es
	}
	es.Blocks = e.Graph.BlockCount()
	es.Edges = e.Graph.EdgeCount()
	if e.Delta != nil {
		es.Added = e.Delta.AddedLines()
		es.Removed = e.Delta.RemovedLines()
		es.BlockDelta = e.Delta.Summary.BlockDelta()
		es.EdgeDelta = e.Delta.Summary.EdgeDelta()
		for _, c := range e.Categories.All {
			es.Categories = append(es.Categories, c.String())
		}
	}
	return es
}
