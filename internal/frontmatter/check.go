package frontmatter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// Check reads a descriptor file and validates its frontmatter against the
// required fields. Messages are prefixed with unit and the file path relative
// to unitDir.
func Check(path, unitDir, unit string, required []string) []string {
	rel, err := filepath.Rel(unitDir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	prefix := fmt.Sprintf("%s/%s", unit, filepath.ToSlash(rel))

	data, err := os.ReadFile(path)
	if err != nil {
		return []string{readFailure(prefix, path, err)}
	}

	if !utf8.Valid(data) {
		return []string{fmt.Sprintf("%s: File is not valid UTF-8\n  Ensure file is text, not binary. Invalid byte at offset %d",
			prefix, invalidOffset(data))}
	}

	doc, err := Parse(string(data))
	if err != nil {
		return []string{fmt.Sprintf("%s: %s", prefix, describe(err))}
	}

	var msgs []string
	for _, field := range required {
		if reason := doc.MissingField(field); reason != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s", prefix, reason))
		}
	}
	return msgs
}

func describe(err error) string {
	var syntaxErr *SyntaxError
	var mappingErr *NotMappingError
	switch {
	case errors.Is(err, ErrNoFrontmatter):
		return "Missing YAML frontmatter (must start with ---)"
	case errors.Is(err, ErrUnclosedFrontmatter):
		return "Malformed frontmatter (missing closing ---)"
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("Invalid YAML in frontmatter\n  %v", syntaxErr.Err)
	case errors.As(err, &mappingErr):
		return fmt.Sprintf("Frontmatter must be a YAML mapping (key-value pairs), got %s", mappingErr.Kind)
	}
	return err.Error()
}

func readFailure(prefix, path string, err error) string {
	if errors.Is(err, fs.ErrPermission) {
		mode := "unknown"
		if info, statErr := os.Stat(path); statErr == nil {
			mode = fmt.Sprintf("%o", info.Mode().Perm())
		}
		return fmt.Sprintf("%s: Permission denied reading file\n  Check file permissions (current: %s)", prefix, mode)
	}
	return fmt.Sprintf("%s: Cannot read file: %v", prefix, err)
}

func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(data)
}
