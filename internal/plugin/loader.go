package plugin

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"
)

// LoadJSON resolves relPath under baseDir and reads it as JSON.
// It returns either the decoded document or a list of messages, never both.
func LoadJSON(baseDir, relPath, context string) (any, []string) {
	path, err := ResolvePath(baseDir, relPath)
	if err != nil {
		if errors.Is(err, ErrPathEscapes) {
			return nil, []string{fmt.Sprintf("%s: Path escapes base directory: %s", context, relPath)}
		}
		return nil, []string{fmt.Sprintf("%s: Invalid path: %v", context, err)}
	}

	if !Exists(path) {
		return nil, []string{fmt.Sprintf("%s: File not found: %s", context, relPath)}
	}

	return ReadJSONFile(path, relPath, context)
}

// ReadJSONFile reads and parses a JSON file, translating every failure into a
// message prefixed with context. display is the name used in messages.
func ReadJSONFile(path, display, context string) (any, []string) {
	if IsDir(path) {
		return nil, []string{fmt.Sprintf("%s: Expected a file but found a directory: %s", context, display)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []string{readErrorMessage(err, display, context)}
	}

	if !utf8.Valid(data) {
		return nil, []string{fmt.Sprintf("%s: File is not valid UTF-8: %s\n  Ensure file is text, not binary", context, display)}
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, []string{syntaxErrorMessage(err, data, display, context)}
	}
	return doc, nil
}

// Decode converts an untyped document that already passed schema validation
// into its typed form
func Decode[T any](doc any) (T, error) {
	var out T
	data, err := json.Marshal(doc)
	if err != nil {
		return out, fmt.Errorf("failed to encode document: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to decode document: %w", err)
	}
	return out, nil
}

// DecodeRaw decodes raw JSON into T, reporting positions like ReadJSONFile
func DecodeRaw[T any](data []byte) (T, error) {
	var out T
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&out); err != nil {
		return out, positionError(err, data)
	}
	return out, nil
}

func readErrorMessage(err error, display, context string) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Sprintf("%s: File not found: %s", context, display)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Sprintf("%s: Permission denied reading file: %s", context, display)
	default:
		return fmt.Sprintf("%s: Cannot read file: %v", context, err)
	}
}

func syntaxErrorMessage(err error, data []byte, display, context string) string {
	return fmt.Sprintf("%s: Invalid JSON in %s\n  %v", context, display, positionError(err, data))
}

// positionError rewrites decoder errors to carry a 1-based line and column
func positionError(err error, data []byte) error {
	var offset int64 = -1
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	}
	if offset < 0 {
		return err
	}
	line, col := lineColumn(data, offset)
	return fmt.Errorf("Line %d, column %d: %w", line, col, err)
}

func lineColumn(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col := 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
