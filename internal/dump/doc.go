// Package dump holds the raw per-pass, per-function dump text of one
// compilation run, plus the filename grammar GCC uses for -fdump-tree-all
// and -fdump-rtl-all output (`<src>.c.<NNN><t|r>.<pass>`).
//
// The store is a plain container: all text is supplied in memory before the
// engine runs, and nothing here does I/O except CollectDir, which is the
// CLI-side helper that reads a dump directory into a store.
package dump
