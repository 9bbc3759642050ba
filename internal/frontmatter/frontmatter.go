// Package frontmatter extracts and checks the YAML metadata block at the top
// of SKILL.md, command and agent descriptors.
//
//	---
//	name: code-reviewer
//	description: Review code for best practices and potential issues.
//	---
//
//	# Code Reviewer
package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Delimiter opens and closes the metadata block
const Delimiter = "---"

var (
	// ErrNoFrontmatter is returned when the document does not start with the delimiter
	ErrNoFrontmatter = errors.New("missing YAML frontmatter (must start with ---)")
	// ErrUnclosedFrontmatter is returned when the closing delimiter is missing
	ErrUnclosedFrontmatter = errors.New("malformed frontmatter (missing closing ---)")
)

// SyntaxError wraps a YAML parse failure inside the block
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid YAML in frontmatter: %v", e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// NotMappingError is returned when the block parses to something other than a mapping
type NotMappingError struct {
	Kind string
}

func (e *NotMappingError) Error() string {
	return fmt.Sprintf("frontmatter must be a YAML mapping (key-value pairs), got %s", e.Kind)
}

// Document is a descriptor split into its metadata and body
type Document struct {
	Fields map[string]any
	Body   string
}

// Parse splits content into frontmatter fields and body.
// The block is the text between the first two delimiters.
func Parse(content string) (*Document, error) {
	if !strings.HasPrefix(content, Delimiter) {
		return nil, ErrNoFrontmatter
	}

	parts := strings.SplitN(content, Delimiter, 3)
	if len(parts) < 3 {
		return nil, ErrUnclosedFrontmatter
	}

	var node yaml.Node
	if err := yaml.Unmarshal([]byte(strings.TrimSpace(parts[1])), &node); err != nil {
		return nil, &SyntaxError{Err: err}
	}

	if node.Kind != yaml.DocumentNode || len(node.Content) == 0 {
		return nil, &NotMappingError{Kind: "null"}
	}
	root := node.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &NotMappingError{Kind: kindName(root)}
	}

	fields := make(map[string]any)
	if err := root.Decode(&fields); err != nil {
		return nil, &SyntaxError{Err: err}
	}

	return &Document{Fields: fields, Body: parts[2]}, nil
}

// MissingField reports why a required field fails, or "" when it is present and non-empty
func (d *Document) MissingField(field string) string {
	value, ok := d.Fields[field]
	if !ok {
		return fmt.Sprintf("Missing required field '%s' in frontmatter", field)
	}
	if isEmpty(value) {
		return fmt.Sprintf("Required field '%s' is empty or null", field)
	}
	return ""
}

// isEmpty mirrors YAML falsiness: null, false, zero, empty string and empty collections
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case int:
		return t == 0
	case int64:
		return t == 0
	case uint64:
		return t == 0
	case float64:
		return t == 0
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "list"
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return "null"
		}
		return "scalar " + strings.TrimPrefix(n.Tag, "!!")
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
