package chunking

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// LoadTextFile reads a plain-text document from disk. The content must be
// valid UTF-8; binary files are rejected rather than embedded as garbage.
func LoadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load document %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("load document %s: not valid UTF-8 text", path)
	}
	return string(data), nil
}
