package mapping

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"guid-corrector/internal/scan"
)

func writeDescriptor(t *testing.T, root, rel, guid string) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	content := "fileFormatVersion: 2\nguid: " + guid + "\n"
	if guid == "" {
		content = "fileFormatVersion: 2\n"
	}

	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

type pairRecorder struct {
	stems []string
}

func (r *pairRecorder) PairMapped(stem, old, new string) {
	r.stems = append(r.stems, stem)
}

func TestBuildCorrelatesByStem(t *testing.T) {
	source := t.TempDir()
	reference := t.TempDir()

	writeDescriptor(t, source, "Foo.meta", g('a'))
	writeDescriptor(t, reference, "somewhere/else/Foo.meta", g('b'))

	descriptors, err := scan.Descriptors(source, ".meta")
	require.NoError(t, err)

	ref, err := scan.BuildIndex(reference, ".meta")
	require.NoError(t, err)

	rec := &pairRecorder{}
	table, diags := NewBuilder(zaptest.NewLogger(t), rec).Build(source, descriptors, ".meta", ref)

	require.True(t, diags.IsValid())
	require.Equal(t, 1, table.Len())

	n, ok := table.Lookup(g('a'))
	require.True(t, ok)
	assert.Equal(t, g('b'), n)

	assert.Equal(t, []string{"Foo"}, rec.stems)
}

func TestBuildUppercaseGUIDsNormalized(t *testing.T) {
	source := t.TempDir()
	reference := t.TempDir()

	writeDescriptor(t, source, "Foo.meta", strings.Repeat("A", 32))
	writeDescriptor(t, reference, "Foo.meta", strings.Repeat("B", 32))

	descriptors, err := scan.Descriptors(source, ".meta")
	require.NoError(t, err)

	ref, err := scan.BuildIndex(reference, ".meta")
	require.NoError(t, err)

	table, _ := NewBuilder(zaptest.NewLogger(t), nil).Build(source, descriptors, ".meta", ref)

	n, ok := table.Lookup(g('a'))
	require.True(t, ok)
	assert.Equal(t, g('b'), n)
}

func TestBuildSkipsUnmatchedStems(t *testing.T) {
	source := t.TempDir()
	reference := t.TempDir()

	writeDescriptor(t, source, "Lonely.meta", g('a'))
	writeDescriptor(t, reference, "Other.meta", g('b'))

	descriptors, err := scan.Descriptors(source, ".meta")
	require.NoError(t, err)

	ref, err := scan.BuildIndex(reference, ".meta")
	require.NoError(t, err)

	table, diags := NewBuilder(zaptest.NewLogger(t), nil).Build(source, descriptors, ".meta", ref)

	assert.Equal(t, 0, table.Len())
	require.Len(t, diags.Infos, 1)
	assert.Equal(t, "unmatched_stem", diags.Infos[0].Code)
}

func TestBuildSkipsMalformedDescriptors(t *testing.T) {
	source := t.TempDir()
	reference := t.TempDir()

	writeDescriptor(t, source, "NoGuid.meta", "")
	writeDescriptor(t, reference, "NoGuid.meta", g('b'))

	writeDescriptor(t, source, "RefBroken.meta", g('c'))
	writeDescriptor(t, reference, "RefBroken.meta", "")

	writeDescriptor(t, source, "Good.meta", g('d'))
	writeDescriptor(t, reference, "Good.meta", g('e'))

	descriptors, err := scan.Descriptors(source, ".meta")
	require.NoError(t, err)

	ref, err := scan.BuildIndex(reference, ".meta")
	require.NoError(t, err)

	table, diags := NewBuilder(zaptest.NewLogger(t), nil).Build(source, descriptors, ".meta", ref)

	// The broken pairs are skipped, the good one survives, the run continues.
	require.Equal(t, 1, table.Len())
	require.True(t, diags.IsValid())
	require.Len(t, diags.Warnings, 2)
	assert.Equal(t, "source_extract_failed", diags.Warnings[0].Code)
	assert.Equal(t, "reference_extract_failed", diags.Warnings[1].Code)
}

func TestBuildWarnsOnDuplicateReferenceStems(t *testing.T) {
	source := t.TempDir()
	reference := t.TempDir()

	writeDescriptor(t, source, "Widget.cs.meta", g('a'))
	writeDescriptor(t, reference, "Runtime/Widget.cs.meta", g('b'))
	writeDescriptor(t, reference, "Editor/Widget.cs.meta", g('c'))

	descriptors, err := scan.Descriptors(source, ".meta")
	require.NoError(t, err)

	ref, err := scan.BuildIndex(reference, ".meta")
	require.NoError(t, err)

	table, diags := NewBuilder(zaptest.NewLogger(t), nil).Build(source, descriptors, ".meta", ref)

	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, "duplicate_stem", diags.Warnings[0].Code)

	// Deterministic winner: Editor/ sorts before Runtime/.
	n, ok := table.Lookup(g('a'))
	require.True(t, ok)
	assert.Equal(t, g('c'), n)
}

func TestBuildEmptySourceTree(t *testing.T) {
	source := t.TempDir()
	reference := t.TempDir()

	writeDescriptor(t, reference, "Foo.meta", g('b'))

	ref, err := scan.BuildIndex(reference, ".meta")
	require.NoError(t, err)

	table, diags := NewBuilder(zaptest.NewLogger(t), nil).Build(source, nil, ".meta", ref)

	assert.Equal(t, 0, table.Len())
	assert.True(t, diags.IsValid())
}
