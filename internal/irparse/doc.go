// Package irparse turns one raw dump's text into a structured listing:
// ordered statements grouped into basic blocks with successor annotations.
//
// The two IR tiers use different textual grammars (GIMPLE block headers and
// goto statements vs RTL insn s-expressions and edge notes) but produce the
// same Listing shape, so everything downstream is tier-agnostic.
package irparse
