package dump

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"passlens/internal/diag"
)

// CollectDir reads every recognizable dump file in dir into a fresh store.
// Filenames that do not match the dump grammar produce an UnknownPassFile
// warning and are skipped; a directory with no recognizable dumps at all is
// an EmptyInput error.
//
// This is the only I/O in the engine's input path; everything downstream
// works on the in-memory store.
func CollectDir(dir string, reporter diag.Reporter) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dump directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	store := NewStore()
	matched := 0
	for _, name := range names {
		pf, ok := ParsePassFile(name)
		if !ok {
			if looksLikeDump(name) {
				diag.ReportWarning(reporter, diag.UnknownPassFile, diag.Locus{},
					fmt.Sprintf("unrecognized dump file name %q", name))
			}
			continue
		}
		matched++
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read dump %s: %w", name, err)
		}
		AddFile(store, pf, string(raw))
	}

	if matched == 0 {
		diag.ReportError(reporter, diag.EmptyInput, diag.Locus{},
			fmt.Sprintf("no dump files found in %s", dir))
		return nil, &EmptyInputError{}
	}
	return store, nil
}

// AddFile splits one dump file's text per function and records each slice.
func AddFile(store *Store, pf PassFile, text string) {
	for _, ft := range SplitFunctions(text) {
		store.Add(Record{
			Function: ft.Name,
			Pass:     pf.Pass,
			Index:    pf.Index,
			Tier:     pf.Tier,
			Text:     ft.Text,
		})
	}
}

// looksLikeDump filters directory noise (sources, objects, editors' leftovers)
// out of the unknown-file warning.
func looksLikeDump(name string) bool {
	return strings.Contains(name, ".c.")
}
