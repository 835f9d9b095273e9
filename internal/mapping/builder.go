package mapping

import (
	"path/filepath"

	"go.uber.org/zap"

	"guid-corrector/internal/diagnostic"
	"guid-corrector/internal/guid"
	"guid-corrector/internal/scan"
)

// Observer receives per-pair correlation events as the table is built.
type Observer interface {
	PairMapped(stem, old, new string)
}

// Builder correlates source descriptors against a reference index and
// produces the mapping table. Collaborators are injected; Builder never
// touches process-wide state.
type Builder struct {
	log *zap.Logger
	obs Observer
}

// NewBuilder creates a Builder. obs may be nil.
func NewBuilder(log *zap.Logger, obs Observer) *Builder {
	return &Builder{log: log, obs: obs}
}

// Build walks every source descriptor (sorted relative paths under
// sourceRoot), resolves its stem in the reference index, extracts both
// GUIDs, and records old->new. Per-pair failures become diagnostics and the
// loop continues; an empty table is a valid outcome for the caller to
// distinguish.
func (b *Builder) Build(sourceRoot string, descriptors []string, ext string, ref *scan.Index) (*Table, *diagnostic.Diagnostics) {
	table := NewTable()
	diags := &diagnostic.Diagnostics{}

	for _, dup := range ref.Duplicates() {
		diags.AddWarning("duplicate_stem",
			"reference tree has multiple descriptors for this stem; using "+dup.Candidates[0],
			dup.Stem, "")
		b.log.Warn("duplicate reference stem",
			zap.String("stem", dup.Stem),
			zap.Strings("candidates", dup.Candidates))
	}

	for _, rel := range descriptors {
		stem := scan.Stem(rel, ext)

		refRel, ok := ref.Resolve(stem)
		if !ok {
			diags.AddInfo("unmatched_stem", "no reference descriptor shares this stem", stem, rel)
			b.log.Debug("unmatched stem", zap.String("stem", stem), zap.String("descriptor", rel))

			continue
		}

		oldGUID, err := guid.ExtractFromFile(filepath.Join(sourceRoot, filepath.FromSlash(rel)))
		if err != nil {
			diags.AddWarning("source_extract_failed", err.Error(), stem, rel)
			b.log.Warn("source guid extraction failed", zap.String("stem", stem), zap.Error(err))

			continue
		}

		newGUID, err := guid.ExtractFromFile(ref.Abs(refRel))
		if err != nil {
			diags.AddWarning("reference_extract_failed", err.Error(), stem, refRel)
			b.log.Warn("reference guid extraction failed", zap.String("stem", stem), zap.Error(err))

			continue
		}

		if prev, seen := table.Lookup(oldGUID); seen && prev != newGUID {
			diags.AddWarning("conflicting_pair",
				"old guid already mapped to "+prev+", overwriting with "+newGUID, stem, rel)
		}

		table.Add(stem, oldGUID, newGUID)
		b.log.Info("mapped",
			zap.String("stem", stem),
			zap.String("old", oldGUID),
			zap.String("new", newGUID))

		if b.obs != nil {
			b.obs.PairMapped(stem, oldGUID, newGUID)
		}
	}

	return table, diags
}
