// Package diff computes the structured delta between two chronologically
// adjacent snapshots of the same function: line-level hunks over the
// flattened statement sequences plus a structural summary of block and
// edge changes.
//
// Statements are normalized before matching (whitespace, block references,
// temporary and insn renumbering) so the diff is not swamped by cosmetic
// renumbering between passes. Block correspondence is a similarity-scored
// heuristic, best-effort by construction: block ids are not stable across
// passes, so blocks are matched by statement overlap, never by id.
package diff
