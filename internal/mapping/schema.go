package mapping

import (
	"guid-corrector/internal/diagnostic"
	"guid-corrector/internal/guid"
)

// MappingFile is the root of a YAML mapping export. It exists so a built
// table can be reviewed by a human and applied in a later run.
type MappingFile struct {
	// Version of the mapping schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Mappings lists the correlated pairs, sorted by stem.
	Mappings []Entry `yaml:"mappings"`
}

// Entry is one pair in a mapping file.
type Entry struct {
	// Stem is the descriptor stem the pair was derived from.
	Stem string `yaml:"stem,omitempty"`

	// Old is the GUID found in the source (decompiled) descriptor.
	Old string `yaml:"old"`

	// New is the authoritative GUID from the reference descriptor.
	New string `yaml:"new"`
}

// FromTable converts a table into its file representation.
func FromTable(t *Table) *MappingFile {
	mf := &MappingFile{Version: "1"}

	for _, p := range t.Pairs() {
		mf.Mappings = append(mf.Mappings, Entry{Stem: p.Stem, Old: p.Old, New: p.New})
	}

	return mf
}

// ToTable converts a parsed mapping file back into a table. GUIDs are
// normalized on the way in; malformed entries become error diagnostics and
// are not added.
func (mf *MappingFile) ToTable() (*Table, *diagnostic.Diagnostics) {
	table := NewTable()
	diags := &diagnostic.Diagnostics{}

	for _, e := range mf.Mappings {
		oldGUID := guid.Normalize(e.Old)
		newGUID := guid.Normalize(e.New)

		if !guid.IsValid(oldGUID) {
			diags.AddError("invalid_old_guid", "old guid is not 32 hex chars: "+e.Old, e.Stem, "")
			continue
		}

		if !guid.IsValid(newGUID) {
			diags.AddError("invalid_new_guid", "new guid is not 32 hex chars: "+e.New, e.Stem, "")
			continue
		}

		table.Add(e.Stem, oldGUID, newGUID)
	}

	return table, diags
}
