// Package cfg normalizes a parsed listing into a control-flow graph:
// every edge target is validated, blocks get a deterministic traversal
// order (entry first, then ascending original id), and unreachable blocks
// are preserved rather than pruned — they are evidence of dead code the
// compiler has not eliminated yet.
package cfg
