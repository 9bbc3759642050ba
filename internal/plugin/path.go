package plugin

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrPathEscapes is returned when a relative path resolves outside its base directory
var ErrPathEscapes = errors.New("path escapes base directory")

// PathError describes a path that could not be resolved under its base
type PathError struct {
	Base string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Path)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// ResolvePath joins relPath onto baseDir and returns the cleaned absolute path.
// The check is lexical: the target does not need to exist, so an escaping path
// is always reported as ErrPathEscapes and never as "not found".
func ResolvePath(baseDir, relPath string) (string, error) {
	base, err := resolveBase(baseDir)
	if err != nil {
		return "", &PathError{Base: baseDir, Path: relPath, Err: err}
	}

	var target string
	if filepath.IsAbs(relPath) {
		target = filepath.Clean(relPath)
	} else {
		target = filepath.Join(base, relPath)
	}

	if !within(base, target) {
		return "", &PathError{Base: base, Path: relPath, Err: ErrPathEscapes}
	}
	return target, nil
}

// resolveBase returns the absolute base with symlinks evaluated when possible
func resolveBase(baseDir string) (string, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("invalid base directory: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// within reports whether target is base or a descendant of it
func within(base, target string) bool {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// Exists reports whether a path exists on disk
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether a path exists and is a directory
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
