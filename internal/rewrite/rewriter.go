// Package rewrite applies the GUID mapping table to target files as literal
// in-memory substitutions, writing back only files whose content changed.
package rewrite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"guid-corrector/internal/mapping"
)

// Observer receives per-file progress events during a rewrite run.
type Observer interface {
	FileProcessed(path string, modified bool, err error)
}

// FileResult reports what happened to a single target file.
type FileResult struct {
	Path     string
	Modified bool
	Err      error
}

// Summary aggregates a rewrite run. Failed files count as processed but not
// modified.
type Summary struct {
	Processed int
	Modified  int
	Failed    int
}

// Rewriter replaces every occurrence of each mapped old GUID with its new
// GUID. The replacer is built once per table; pairs are assumed
// non-overlapping, and strings.Replacer's single pass keeps a chained pair
// from being rewritten twice in one file.
type Rewriter struct {
	replacer *strings.Replacer
	log      *zap.Logger
	dryRun   bool
}

// NewRewriter builds a Rewriter from a mapping table. With dryRun set, files
// are read and counted but never written.
func NewRewriter(table *mapping.Table, log *zap.Logger, dryRun bool) *Rewriter {
	oldnew := make([]string, 0, table.Len()*2)
	for _, p := range table.Pairs() {
		oldnew = append(oldnew, p.Old, p.New)
	}

	return &Rewriter{
		replacer: strings.NewReplacer(oldnew...),
		log:      log,
		dryRun:   dryRun,
	}
}

// RewriteFile reads path, applies all mappings, and writes the file back
// only if the content changed. I/O failures are recorded in the result, not
// returned: a single unreadable target never aborts the run.
func (r *Rewriter) RewriteFile(path string) FileResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Err: fmt.Errorf("reading %s: %w", path, err)}
	}

	content := string(data)

	replaced := r.replacer.Replace(content)
	if replaced == content {
		return FileResult{Path: path}
	}

	if r.dryRun {
		return FileResult{Path: path, Modified: true}
	}

	if err := writeAtomic(path, []byte(replaced)); err != nil {
		return FileResult{Path: path, Err: err}
	}

	return FileResult{Path: path, Modified: true}
}

// Run rewrites every target file in order. Cancellation is honored between
// files; the partial summary is returned alongside ctx.Err().
func (r *Rewriter) Run(ctx context.Context, paths []string, obs Observer) (Summary, error) {
	var sum Summary

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		res := r.RewriteFile(path)
		sum.Processed++

		switch {
		case res.Err != nil:
			sum.Failed++
			r.log.Error("rewrite failed", zap.String("path", path), zap.Error(res.Err))
		case res.Modified:
			sum.Modified++
			r.log.Info("updated", zap.String("path", path), zap.Bool("dry_run", r.dryRun))
		}

		if obs != nil {
			obs.FileProcessed(path, res.Modified, res.Err)
		}
	}

	return sum, nil
}

// writeAtomic replaces path via a same-directory temp file and rename, so a
// crash mid-write cannot leave a half-written target. The original file's
// permission bits are preserved.
func writeAtomic(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".guidfix-*")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return fmt.Errorf("writing %s: %w", tmpName, err)
	}

	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)

		return fmt.Errorf("closing %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)

		return fmt.Errorf("replacing %s: %w", path, err)
	}

	return nil
}
