package mapping

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	yaml := `
version: "1"
mappings:
  - stem: Foo
    old: aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa
    new: bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb
  - stem: Bar.cs
    old: cccccccccccccccccccccccccccccccc
    new: dddddddddddddddddddddddddddddddd
`

	mf, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.NotNil(t, mf)

	assert.Equal(t, "1", mf.Version)
	require.Len(t, mf.Mappings, 2)
	assert.Equal(t, "Foo", mf.Mappings[0].Stem)
	assert.Equal(t, g('a'), mf.Mappings[0].Old)
	assert.Equal(t, g('b'), mf.Mappings[0].New)
}

func TestParseMinimal(t *testing.T) {
	yaml := `
mappings:
  - old: aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa
    new: bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb
`

	mf, err := Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, "1", mf.Version) // Default version
	require.Len(t, mf.Mappings, 1)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("mappings: [unclosed"))
	require.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	table := NewTable()
	table.Add("Foo", g('a'), g('b'))
	table.Add("Bar", g('c'), g('d'))

	path := filepath.Join(t.TempDir(), "guid-mappings.yaml")
	require.NoError(t, WriteFile(FromTable(table), path))

	mf, err := LoadFile(path)
	require.NoError(t, err)

	loaded, diags := mf.ToTable()
	require.True(t, diags.IsValid())
	assert.Equal(t, table.Pairs(), loaded.Pairs())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestToTableNormalizesAndValidates(t *testing.T) {
	mf := &MappingFile{
		Mappings: []Entry{
			{Stem: "Upper", Old: strings.Repeat("A", 32), New: strings.Repeat("B", 32)},
			{Stem: "Bad", Old: "xyz", New: g('c')},
		},
	}

	table, diags := mf.ToTable()

	require.Len(t, diags.Errors, 1)
	assert.Equal(t, "invalid_old_guid", diags.Errors[0].Code)

	require.Equal(t, 1, table.Len())

	n, ok := table.Lookup(g('a'))
	require.True(t, ok)
	assert.Equal(t, g('b'), n)
}
