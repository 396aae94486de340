// Package diag carries structured failures produced while processing a
// compilation run's dump set.
//
// Every failure is scoped by a Locus (function, pass name, pass index, line)
// so that one function's bad dump never aborts the rest of the run: the
// pipeline collects diagnostics into a Bag per function and keeps going.
package diag
