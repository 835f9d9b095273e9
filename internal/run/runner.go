// Package run orchestrates the correction pipeline: validate, build the
// mapping table, collect targets, substitute. It owns the phase state
// machine and the final report; all I/O components are injected.
package run

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"guid-corrector/internal/config"
	"guid-corrector/internal/diagnostic"
	"guid-corrector/internal/mapping"
	"guid-corrector/internal/report"
	"guid-corrector/internal/rewrite"
	"guid-corrector/internal/scan"
)

// Report is the structured result of a run.
type Report struct {
	Outcome  Outcome
	Phase    Phase
	Mappings int

	Processed int
	Modified  int
	Failed    int

	Diagnostics diagnostic.Diagnostics
}

// Runner executes the pipeline. Logger and reporter are injected so a run
// carries no process-wide state and tests can capture everything.
type Runner struct {
	cfg config.Config
	log *zap.Logger
	rep report.Reporter
}

// New creates a Runner. A nil reporter means run silently.
func New(cfg config.Config, log *zap.Logger, rep report.Reporter) *Runner {
	if rep == nil {
		rep = report.Nop{}
	}

	return &Runner{cfg: cfg, log: log, rep: rep}
}

// Run executes the full pipeline. Non-success outcomes (validation failure,
// empty table) are reported through Report, not as errors; the error return
// covers unexpected failures such as an unwalkable tree or cancellation.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	rep := Report{Phase: PhaseUnvalidated}

	if !r.validate(&rep) {
		return rep, nil
	}

	table, ok, err := r.buildTable(&rep)
	if err != nil || !ok {
		return rep, err
	}

	r.advance(&rep, PhaseMappingBuilt)

	targets, err := scan.Targets(r.cfg.ProjectPath, r.cfg.TargetExtensions)
	if err != nil {
		return rep, err
	}

	r.rep.PhaseStarted("correcting guids", len(targets))
	r.advance(&rep, PhaseTargetsCollected)

	rewriter := rewrite.NewRewriter(table, r.log, r.cfg.DryRun)

	sum, err := rewriter.Run(ctx, targets, r.rep)
	rep.Processed = sum.Processed
	rep.Modified = sum.Modified
	rep.Failed = sum.Failed

	if err != nil {
		return rep, fmt.Errorf("substitution interrupted: %w", err)
	}

	r.advance(&rep, PhaseSubstituted)

	r.rep.RunFinished(rep.Mappings, rep.Processed, rep.Modified, rep.Failed)
	r.log.Info("run finished",
		zap.Int("mappings", rep.Mappings),
		zap.Int("processed", rep.Processed),
		zap.Int("modified", rep.Modified),
		zap.Int("failed", rep.Failed))

	r.advance(&rep, PhaseDone)
	rep.Outcome = OutcomeCompleted

	return rep, nil
}

// Plan builds and validates the mapping table without touching the project
// tree, optionally exporting it to exportPath for human review.
func (r *Runner) Plan(exportPath string) (Report, *mapping.Table, error) {
	rep := Report{Phase: PhaseUnvalidated}

	if exportPath != "" {
		r.cfg.ExportFile = exportPath
	}

	if !r.validate(&rep) {
		return rep, nil, nil
	}

	table, ok, err := r.buildTable(&rep)
	if err != nil || !ok {
		return rep, nil, err
	}

	r.advance(&rep, PhaseMappingBuilt)
	r.advance(&rep, PhaseDone)
	rep.Outcome = OutcomeCompleted

	return rep, table, nil
}

// validate runs the pre-flight checks. On failure the run exits early with
// OutcomeValidationFailed and nothing has been mutated.
func (r *Runner) validate(rep *Report) bool {
	r.rep.PhaseStarted("validating paths", -1)

	diags := r.cfg.Validate()
	rep.Diagnostics.Merge(*diags)

	if diags.HasErrors() {
		for _, d := range diags.Errors {
			r.log.Error("validation failed", zap.String("detail", d.String()))
		}

		rep.Outcome = OutcomeValidationFailed
		r.advance(rep, PhaseDone)

		return false
	}

	r.advance(rep, PhaseValidated)

	return true
}

// buildTable produces the mapping table, either from a reviewed mapping
// file or by correlating the source and reference trees. ok is false when
// the table came out empty (OutcomeNoMappings) or validation of a loaded
// file failed.
func (r *Runner) buildTable(rep *Report) (*mapping.Table, bool, error) {
	var (
		table *mapping.Table
		diags *diagnostic.Diagnostics
	)

	if r.cfg.MappingFile != "" {
		mf, err := mapping.LoadFile(r.cfg.MappingFile)
		if err != nil {
			return nil, false, err
		}

		r.rep.PhaseStarted("loading mapping table", len(mf.Mappings))
		table, diags = mf.ToTable()
	} else {
		descriptors, err := scan.Descriptors(r.cfg.SourcePath, r.cfg.DescriptorExt)
		if err != nil {
			return nil, false, err
		}

		refIdx, err := scan.BuildIndex(r.cfg.ReferencePath, r.cfg.DescriptorExt)
		if err != nil {
			return nil, false, err
		}

		r.rep.PhaseStarted("building guid mappings", len(descriptors))

		builder := mapping.NewBuilder(r.log, r.rep)
		table, diags = builder.Build(r.cfg.SourcePath, descriptors, r.cfg.DescriptorExt, refIdx)
	}

	rep.Diagnostics.Merge(*diags)

	if diags.HasErrors() {
		// Only a loaded mapping file can carry error diagnostics; a built
		// table degrades per-pair failures to warnings.
		rep.Outcome = OutcomeValidationFailed
		r.advance(rep, PhaseDone)

		return nil, false, nil
	}

	vdiags := table.Validate()
	rep.Diagnostics.Merge(*vdiags)
	rep.Mappings = table.Len()

	if table.Len() == 0 {
		r.log.Error("no guid mappings found, project tree left untouched")

		rep.Outcome = OutcomeNoMappings
		r.advance(rep, PhaseDone)

		return nil, false, nil
	}

	if r.cfg.ExportFile != "" && r.cfg.MappingFile == "" {
		if err := mapping.WriteFile(mapping.FromTable(table), r.cfg.ExportFile); err != nil {
			return nil, false, err
		}

		r.log.Info("mapping table exported", zap.String("path", r.cfg.ExportFile))
	}

	return table, true, nil
}

// advance moves the state machine forward and logs the transition.
func (r *Runner) advance(rep *Report, next Phase) {
	r.log.Debug("phase transition",
		zap.Stringer("from", rep.Phase),
		zap.Stringer("to", next))
	rep.Phase = next
}
