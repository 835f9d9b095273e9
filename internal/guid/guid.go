// Package guid extracts and validates the 32-hex-digit asset identifiers
// embedded in descriptor files.
package guid

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Length is the number of hex characters in a GUID.
const Length = 32

// Pattern matches a descriptor's identifier line. Only the first match per
// file is meaningful.
var Pattern = regexp.MustCompile(`guid:\s*([a-fA-F0-9]{32})`)

// ErrNoGUID indicates that content contained no well-formed identifier line.
var ErrNoGUID = errors.New("no guid found")

// Extract returns the first GUID found in content, normalized to lowercase.
// The second return value reports whether a GUID was found.
func Extract(content string) (string, bool) {
	m := Pattern.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}

	return Normalize(m[1]), true
}

// ExtractFromFile reads the file at path and extracts its GUID.
// A missing identifier line is reported as ErrNoGUID, distinguishable
// from read failures.
func ExtractFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading descriptor %s: %w", path, err)
	}

	g, ok := Extract(string(data))
	if !ok {
		return "", fmt.Errorf("descriptor %s: %w", path, ErrNoGUID)
	}

	return g, nil
}

// Normalize lowercases a GUID. Descriptors are case-insensitive on read;
// the mapping table holds lowercase only.
func Normalize(s string) string {
	return strings.ToLower(s)
}

// IsValid reports whether s is exactly 32 lowercase hex characters.
func IsValid(s string) bool {
	if len(s) != Length {
		return false
	}

	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}

	return true
}

// Random returns a fresh GUID: the lowercase hex digits of a random UUID.
func Random() string {
	u := uuid.New()

	return strings.ReplaceAll(u.String(), "-", "")
}
