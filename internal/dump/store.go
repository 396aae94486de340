package dump

import (
	"fmt"
	"sort"
	"strings"

	"passlens/internal/diag"
)

// Record is one function's raw dump text at one pass.
type Record struct {
	Function string
	Pass     string
	Index    int
	Tier     Tier
	Text     string
}

// Key identifies a Record within a store.
type Key struct {
	Function string
	Pass     string
	Index    int
}

// Store holds every Record of a single compilation run.
// It is filled once, before the engine runs, and read concurrently after.
type Store struct {
	byKey  map[Key]Record
	byFunc map[string][]Key
}

func NewStore() *Store {
	return &Store{
		byKey:  make(map[Key]Record),
		byFunc: make(map[string][]Key),
	}
}

// Add inserts a record, replacing any earlier record with the same key.
func (s *Store) Add(rec Record) {
	key := Key{Function: rec.Function, Pass: rec.Pass, Index: rec.Index}
	if _, exists := s.byKey[key]; !exists {
		s.byFunc[rec.Function] = append(s.byFunc[rec.Function], key)
	}
	s.byKey[key] = rec
}

// Lookup returns the record for (function, pass, index).
func (s *Store) Lookup(function, pass string, index int) (Record, bool) {
	rec, ok := s.byKey[Key{Function: function, Pass: pass, Index: index}]
	return rec, ok
}

// Functions returns all function names in the store, sorted.
func (s *Store) Functions() []string {
	names := make([]string, 0, len(s.byFunc))
	for name := range s.byFunc {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshots returns all records of one function in insertion order.
// Returns an EmptyInput error when the store holds nothing for the function.
func (s *Store) Snapshots(function string) ([]Record, error) {
	keys := s.byFunc[function]
	if len(keys) == 0 {
		return nil, &EmptyInputError{Function: function}
	}
	recs := make([]Record, 0, len(keys))
	for _, k := range keys {
		recs = append(recs, s.byKey[k])
	}
	return recs, nil
}

// Len returns the total number of records.
func (s *Store) Len() int {
	return len(s.byKey)
}

// EmptyInputError reports that no dumps exist for a requested function.
// Distinct from a parsed-but-empty listing, which is valid.
type EmptyInputError struct {
	Function string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("no dumps for function %q", e.Function)
}

// Locus places the error for diagnostics.
func (e *EmptyInputError) Locus() diag.Locus {
	return diag.Locus{Function: e.Function}
}

// FunctionText is one function's slice of a multi-function dump file.
type FunctionText struct {
	Name string
	Text string
}

const functionMarker = ";; Function "

// SplitFunctions cuts a dump file's text into per-function texts on the
// `;; Function name (...)` headers GCC emits. Text before the first header
// (or a file with no headers at all) is returned under the empty name so
// callers can decide whether it is meaningful.
func SplitFunctions(text string) []FunctionText {
	var out []FunctionText
	current := ""
	var lines []string
	flush := func() {
		if current == "" && len(out) == 0 && allBlank(lines) {
			lines = nil
			return
		}
		if current != "" || len(lines) > 0 {
			out = append(out, FunctionText{Name: current, Text: strings.Join(lines, "\n")})
		}
		lines = nil
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, functionMarker) {
			flush()
			current = functionName(line)
			continue
		}
		lines = append(lines, line)
	}
	flush()
	return out
}

// functionName extracts the identifier from a `;; Function name (...)` header.
func functionName(line string) string {
	rest := strings.TrimPrefix(line, functionMarker)
	if i := strings.IndexAny(rest, " (\t"); i >= 0 {
		return rest[:i]
	}
	return rest
}

func allBlank(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}
