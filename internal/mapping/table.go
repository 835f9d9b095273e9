package mapping

import (
	"sort"

	"guid-corrector/internal/diagnostic"
	"guid-corrector/internal/guid"
)

// Pair is one correlated old->new GUID mapping, tagged with the descriptor
// stem it was derived from.
type Pair struct {
	Stem string
	Old  string
	New  string
}

// Table is the immutable-once-built mapping from old GUIDs to new GUIDs.
// Keys are unique; values are well-formed GUIDs. The zero value is not
// usable, use NewTable.
type Table struct {
	pairs map[string]string // old -> new
	stems map[string]string // old -> stem, for reporting
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		pairs: make(map[string]string),
		stems: make(map[string]string),
	}
}

// Add records a pair. A later pair for the same old GUID overwrites the
// earlier one; Build reports that case as a conflict diagnostic.
func (t *Table) Add(stem, oldGUID, newGUID string) {
	t.pairs[oldGUID] = newGUID
	t.stems[oldGUID] = stem
}

// Len returns the number of pairs in the table.
func (t *Table) Len() int {
	return len(t.pairs)
}

// Lookup returns the new GUID for old, if mapped.
func (t *Table) Lookup(old string) (string, bool) {
	n, ok := t.pairs[old]

	return n, ok
}

// Pairs returns all pairs sorted by stem, then by old GUID, so exports and
// logs are stable across runs.
func (t *Table) Pairs() []Pair {
	pairs := make([]Pair, 0, len(t.pairs))
	for o, n := range t.pairs {
		pairs = append(pairs, Pair{Stem: t.stems[o], Old: o, New: n})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Stem != pairs[j].Stem {
			return pairs[i].Stem < pairs[j].Stem
		}

		return pairs[i].Old < pairs[j].Old
	})

	return pairs
}

// Validate checks the table invariants and prunes identity pairs.
//
//   - Every key and value must be a well-formed lowercase GUID (error).
//   - A pair mapping a GUID to itself is dropped with a warning: replacing
//     it would be a no-op that only forces spurious write-backs.
//   - An old GUID that is also some pair's new GUID gets a warning, since
//     substitution order would then matter.
func (t *Table) Validate() *diagnostic.Diagnostics {
	diags := &diagnostic.Diagnostics{}

	newSet := make(map[string]string, len(t.pairs)) // new guid -> stem
	for o, n := range t.pairs {
		newSet[n] = t.stems[o]
	}

	for _, p := range t.Pairs() {
		if !guid.IsValid(p.Old) {
			diags.AddError("invalid_old_guid", "old guid is not 32 lowercase hex chars: "+p.Old, p.Stem, "")
			continue
		}

		if !guid.IsValid(p.New) {
			diags.AddError("invalid_new_guid", "new guid is not 32 lowercase hex chars: "+p.New, p.Stem, "")
			continue
		}

		if p.Old == p.New {
			diags.AddWarning("identity_mapping", "descriptor already carries the reference guid, pair dropped", p.Stem, "")
			delete(t.pairs, p.Old)
			delete(t.stems, p.Old)

			continue
		}

		if stem, ok := newSet[p.Old]; ok {
			diags.AddWarning("chained_mapping",
				"old guid is also the new guid of stem "+stem+"; substitution order matters", p.Stem, "")
		}
	}

	return diags
}
