// Package schema validates parsed JSON documents against the embedded
// Draft 7 schemas for marketplace.json, its plugin entries and plugin.json.
//
// Violations of the document are returned as messages. Problems with the
// schema itself are reported as internal errors so that a broken validator
// is never mistaken for invalid user input.
package schema

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/egoavara/verify-structure/internal/search"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// MaxDepth bounds how deeply nested a document may be before validation is refused
const MaxDepth = 64

// Names of the embedded schemas
const (
	Marketplace = "marketplace"
	PluginEntry = "plugin-entry"
	Plugin      = "plugin"
)

// Schema is a compiled schema, or the reason it failed to compile
type Schema struct {
	name     string
	compiled *gojsonschema.Schema
	raw      map[string]any
	err      error
}

// Load compiles one of the embedded schemas by name
func Load(name string) *Schema {
	data, err := schemaFS.ReadFile("schemas/" + name + ".schema.json")
	if err != nil {
		return &Schema{name: name, err: fmt.Errorf("schema %q not embedded: %w", name, err)}
	}
	return Compile(name, data)
}

// Compile compiles a schema from raw JSON
func Compile(name string, data []byte) *Schema {
	s := &Schema{name: name}
	if err := json.Unmarshal(data, &s.raw); err != nil {
		s.err = fmt.Errorf("schema is not valid JSON: %w", err)
		return s
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		s.err = err
		return s
	}
	s.compiled = compiled
	return s
}

// Name returns the schema name
func (s *Schema) Name() string {
	return s.name
}

// Err returns the compilation error, if any
func (s *Schema) Err() error {
	return s.err
}

// Validate checks doc against the schema. Every message is prefixed with context.
func (s *Schema) Validate(doc any, context string) (msgs []string) {
	if s.err != nil {
		if isReferenceError(s.err) {
			return []string{fmt.Sprintf("%s: Schema reference resolution failed: %v", context, s.err)}
		}
		return []string{fmt.Sprintf(
			"%s: INTERNAL ERROR - Invalid schema definition: %v\n  This is a bug in the verification tool, please report it",
			context, s.err)}
	}

	if depth(doc, 0) > MaxDepth {
		return []string{fmt.Sprintf("%s: Data structure too deeply nested (limit %d)", context, MaxDepth)}
	}

	defer func() {
		if r := recover(); r != nil {
			msgs = []string{fmt.Sprintf("%s: INTERNAL ERROR - schema validation aborted: %v", context, r)}
		}
	}()

	result, err := s.compiled.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return []string{fmt.Sprintf("%s: Invalid data structure: %v", context, err)}
	}
	if result.Valid() {
		return nil
	}

	for _, e := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s: %s", context, FieldPath(e.Field()), s.describe(e)))
	}
	sort.Strings(msgs)
	return msgs
}

// describe renders a violation, adding a suggestion for unknown properties
func (s *Schema) describe(e gojsonschema.ResultError) string {
	desc := e.Description()
	if e.Type() != "additional_property_not_allowed" {
		return desc
	}
	property, _ := e.Details()["property"].(string)
	field := strings.TrimSuffix(strings.TrimSuffix(e.Field(), property), ".")
	if suggestion, ok := search.Suggest(property, s.propertiesAt(field)); ok {
		desc += fmt.Sprintf(" (did you mean %q?)", suggestion)
	}
	return desc
}

// propertiesAt lists the declared property names of the object at field
func (s *Schema) propertiesAt(field string) []string {
	node := s.raw
	if field != "" && field != "(root)" {
		for _, seg := range strings.Split(field, ".") {
			if _, err := strconv.Atoi(seg); err == nil {
				node, _ = node["items"].(map[string]any)
			} else {
				props, _ := node["properties"].(map[string]any)
				node, _ = props[seg].(map[string]any)
			}
			if node == nil {
				return nil
			}
		}
	}

	props, _ := node["properties"].(map[string]any)
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FieldPath converts a gojsonschema field ("plugins.0.name") into the
// dot/bracket form used in messages ("plugins[0].name")
func FieldPath(field string) string {
	if field == "" || field == "(root)" {
		return "root"
	}
	field = strings.TrimPrefix(field, "(root).")

	var sb strings.Builder
	for i, seg := range strings.Split(field, ".") {
		if _, err := strconv.Atoi(seg); err == nil {
			sb.WriteString("[" + seg + "]")
			continue
		}
		if i > 0 {
			sb.WriteString(".")
		}
		sb.WriteString(seg)
	}
	return sb.String()
}

// depth returns the nesting depth of a decoded JSON value, stopping early past MaxDepth
func depth(v any, current int) int {
	if current > MaxDepth {
		return current
	}
	deepest := current
	switch t := v.(type) {
	case map[string]any:
		for _, child := range t {
			if d := depth(child, current+1); d > deepest {
				deepest = d
			}
		}
	case []any:
		for _, child := range t {
			if d := depth(child, current+1); d > deepest {
				deepest = d
			}
		}
	}
	return deepest
}

func isReferenceError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "$ref") || strings.Contains(msg, "reference")
}
