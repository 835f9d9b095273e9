package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultTargetExtensions is the allow-list of file extensions rewritten by
// the substitution engine. Descriptor files are themselves targets: their
// content references other assets by GUID.
func DefaultTargetExtensions() []string {
	return []string{".meta", ".unity", ".asset", ".prefab", ".mat"}
}

// Targets returns the absolute paths of all files under root whose extension
// is in exts, sorted. No filtering by mapping relevance happens here; the
// substitution engine skips files that contain no mapped GUID by virtue of
// unchanged content.
func Targets(root string, exts []string) ([]string, error) {
	allow := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		allow[strings.ToLower(ext)] = struct{}{}
	}

	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if _, ok := allow[strings.ToLower(filepath.Ext(d.Name()))]; ok {
			paths = append(paths, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collecting targets under %s: %w", root, err)
	}

	sort.Strings(paths)

	return paths, nil
}
