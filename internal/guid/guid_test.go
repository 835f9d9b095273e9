package guid

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
		found    bool
	}{
		{
			name:     "lowercase",
			content:  "fileFormatVersion: 2\nguid: 0123456789abcdef0123456789abcdef\n",
			expected: "0123456789abcdef0123456789abcdef",
			found:    true,
		},
		{
			name:     "uppercase normalized",
			content:  "guid: 0123456789ABCDEF0123456789ABCDEF",
			expected: "0123456789abcdef0123456789abcdef",
			found:    true,
		},
		{
			name:     "mixed case normalized",
			content:  "guid: 0123456789AbCdEf0123456789aBcDeF",
			expected: "0123456789abcdef0123456789abcdef",
			found:    true,
		},
		{
			name:     "whitespace after colon",
			content:  "guid:   aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			expected: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			found:    true,
		},
		{
			name:     "first match wins",
			content:  "guid: aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa\nguid: bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb\n",
			expected: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			found:    true,
		},
		{
			name:    "too short",
			content: "guid: abcdef",
			found:   false,
		},
		{
			name:    "non-hex",
			content: "guid: zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",
			found:   false,
		},
		{
			name:    "no identifier line",
			content: "fileFormatVersion: 2\n",
			found:   false,
		},
		{
			name:    "empty",
			content: "",
			found:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.content)
			if ok != tt.found {
				t.Fatalf("Extract(%q) found = %v, want %v", tt.content, ok, tt.found)
			}

			if got != tt.expected {
				t.Errorf("Extract(%q) = %q, want %q", tt.content, got, tt.expected)
			}
		})
	}
}

func TestExtractFromFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "Foo.meta")
	if err := os.WriteFile(good, []byte("guid: 0123456789ABCDEF0123456789abcdef\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := ExtractFromFile(good)
	if err != nil {
		t.Fatalf("ExtractFromFile(%s) error: %v", good, err)
	}

	if g != "0123456789abcdef0123456789abcdef" {
		t.Errorf("ExtractFromFile = %q, want lowercased guid", g)
	}

	empty := filepath.Join(dir, "Bar.meta")
	if err := os.WriteFile(empty, []byte("fileFormatVersion: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err = ExtractFromFile(empty)
	if err == nil || !strings.Contains(err.Error(), "no guid found") {
		t.Errorf("ExtractFromFile on guid-less file = %v, want ErrNoGUID", err)
	}

	_, err = ExtractFromFile(filepath.Join(dir, "missing.meta"))
	if err == nil {
		t.Error("ExtractFromFile on missing file should fail")
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"0123456789abcdef0123456789abcdef", true},
		{strings.Repeat("a", 32), true},
		{strings.Repeat("A", 32), false}, // uppercase is not normalized form
		{strings.Repeat("a", 31), false},
		{strings.Repeat("a", 33), false},
		{strings.Repeat("g", 32), false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValid(tt.input); got != tt.valid {
				t.Errorf("IsValid(%q) = %v, want %v", tt.input, got, tt.valid)
			}
		})
	}
}

func TestRandom(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 100; i++ {
		g := Random()
		if !IsValid(g) {
			t.Fatalf("Random() = %q, not a valid guid", g)
		}

		if _, ok := seen[g]; ok {
			t.Fatalf("Random() repeated %q", g)
		}

		seen[g] = struct{}{}
	}
}
