// Package sequence restores the canonical execution order of a function's
// pass snapshots and partitions them into the two IR tiers.
package sequence

import (
	"fmt"
	"sort"

	"passlens/internal/diag"
	"passlens/internal/dump"
)

// Ordered holds one function's snapshots sorted by pass index ascending,
// split by tier with relative order preserved.
type Ordered struct {
	Gimple []dump.Record
	RTL    []dump.Record
}

// Tier returns the partition for one tier.
func (o *Ordered) Tier(t dump.Tier) []dump.Record {
	if t == dump.TierRTL {
		return o.RTL
	}
	return o.Gimple
}

// ConflictError reports two snapshots claiming the same pass index under
// different pass names. Inconsistent input is surfaced, never resolved.
type ConflictError struct {
	Function string
	Index    int
	PassA    string
	PassB    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("function %q: pass index %d claimed by both %q and %q",
		e.Function, e.Index, e.PassA, e.PassB)
}

// Code returns the diagnostic code this error maps to.
func (e *ConflictError) Code() diag.Code {
	return diag.SequencingConflict
}

// Order sorts a function's snapshots by pass index and partitions them by
// tier. The input order does not matter; the result is deterministic for
// any permutation of the same set.
func Order(recs []dump.Record) (*Ordered, error) {
	sorted := make([]dump.Record, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Index != sorted[j].Index {
			return sorted[i].Index < sorted[j].Index
		}
		return sorted[i].Pass < sorted[j].Pass
	})

	out := &Ordered{}
	lastIndex := -1
	lastPass := ""
	for _, rec := range sorted {
		if rec.Index == lastIndex {
			if rec.Pass != lastPass {
				return nil, &ConflictError{
					Function: rec.Function,
					Index:    rec.Index,
					PassA:    lastPass,
					PassB:    rec.Pass,
				}
			}
			// Exact duplicate of the previous snapshot: drop it so pass
			// indices stay strictly increasing.
			continue
		}
		lastIndex, lastPass = rec.Index, rec.Pass
		if rec.Tier == dump.TierRTL {
			out.RTL = append(out.RTL, rec)
		} else {
			out.Gimple = append(out.Gimple, rec)
		}
	}
	return out, nil
}
