// Package scan enumerates descriptor files and substitution targets
// under the three directory trees a run operates on.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultDescriptorExt is the sidecar extension descriptor files carry.
const DefaultDescriptorExt = ".meta"

// Descriptors returns the relative paths of all descriptor files under root,
// sorted lexicographically. Paths use forward slashes regardless of platform
// so logs and exported mapping files are stable.
func Descriptors(root, ext string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(d.Name(), ext) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		paths = append(paths, filepath.ToSlash(rel))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning descriptors under %s: %w", root, err)
	}

	sort.Strings(paths)

	return paths, nil
}

// HasDescriptor reports whether at least one descriptor file exists under
// root. It stops walking at the first hit.
func HasDescriptor(root, ext string) bool {
	found := false

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// An unreadable subtree doesn't disprove existence elsewhere.
			return nil
		}

		if !d.IsDir() && strings.HasSuffix(d.Name(), ext) {
			found = true

			return fs.SkipAll
		}

		return nil
	})

	return found
}

// Stem derives the correlation key for a descriptor: the base name with the
// descriptor extension removed. "Textures/Foo.png.meta" -> "Foo.png".
func Stem(relPath, ext string) string {
	return strings.TrimSuffix(filepath.Base(relPath), ext)
}

// Index maps descriptor stems to their candidate files within one tree.
// A stem can have several candidates when the tree holds identically named
// descriptors in different directories; Resolve breaks the tie
// deterministically.
type Index struct {
	root  string
	ext   string
	stems map[string][]string // stem -> sorted relative paths
}

// BuildIndex walks root and indexes every descriptor file by stem.
func BuildIndex(root, ext string) (*Index, error) {
	paths, err := Descriptors(root, ext)
	if err != nil {
		return nil, err
	}

	idx := &Index{
		root:  root,
		ext:   ext,
		stems: make(map[string][]string, len(paths)),
	}

	for _, rel := range paths {
		stem := Stem(rel, ext)
		idx.stems[stem] = append(idx.stems[stem], rel)
	}

	// Candidate lists come from a sorted walk, but sort again so Resolve
	// never depends on traversal order.
	for _, candidates := range idx.stems {
		sort.Strings(candidates)
	}

	return idx, nil
}

// Root returns the tree root this index was built from.
func (x *Index) Root() string {
	return x.root
}

// Len returns the number of distinct stems in the index.
func (x *Index) Len() int {
	return len(x.stems)
}

// Resolve returns the descriptor path for a stem. When several candidates
// share the stem, the lexicographically smallest relative path wins.
func (x *Index) Resolve(stem string) (string, bool) {
	candidates, ok := x.stems[stem]
	if !ok {
		return "", false
	}

	return candidates[0], true
}

// Abs converts a relative descriptor path back to an absolute path.
func (x *Index) Abs(rel string) string {
	return filepath.Join(x.root, filepath.FromSlash(rel))
}

// Duplicates returns the stems with more than one candidate, sorted, each
// with its full sorted candidate list.
func (x *Index) Duplicates() []DuplicateStem {
	var dups []DuplicateStem

	for stem, candidates := range x.stems {
		if len(candidates) > 1 {
			dups = append(dups, DuplicateStem{Stem: stem, Candidates: candidates})
		}
	}

	sort.Slice(dups, func(i, j int) bool { return dups[i].Stem < dups[j].Stem })

	return dups
}

// DuplicateStem reports a stem shared by several descriptor files.
type DuplicateStem struct {
	Stem       string
	Candidates []string
}
