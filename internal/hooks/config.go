package hooks

import (
	"regexp"
	"sort"
	"strings"
)

const (
	// DefaultFile is the hooks configuration path used when none is declared
	DefaultFile = "hooks/hooks.json"

	// TypeCommand hooks run a shell command
	TypeCommand = "command"
)

// validEvents are the hook events Claude Code dispatches
var validEvents = map[string]bool{
	"PreToolUse":       true,
	"PostToolUse":      true,
	"UserPromptSubmit": true,
	"Notification":     true,
	"Stop":             true,
	"SubagentStop":     true,
	"SessionStart":     true,
	"SessionEnd":       true,
	"PreCompact":       true,
}

// validTypes are the accepted hook types
var validTypes = map[string]bool{
	TypeCommand:    true,
	"validation":   true,
	"notification": true,
}

// Config represents a hooks.json document or an inline hooks object
type Config struct {
	Description string               `json:"description,omitempty"`
	Hooks       map[string][]Matcher `json:"hooks"`
}

// Matcher groups the hooks that fire for one tool matcher
type Matcher struct {
	Matcher string `json:"matcher,omitempty"`
	Hooks   []Hook `json:"hooks"`
}

// Hook is a single hook action. Type is nil when the key is absent.
type Hook struct {
	Type    *string `json:"type,omitempty"`
	Command string  `json:"command,omitempty"`
	Timeout *int    `json:"timeout,omitempty"`
}

// Events returns the configured event names in sorted order
func (c *Config) Events() []string {
	names := make([]string, 0, len(c.Hooks))
	for name := range c.Hooks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsValidEvent reports whether name is a known hook event
func IsValidEvent(name string) bool {
	return validEvents[name]
}

// IsValidType reports whether t is a known hook type
func IsValidType(t string) bool {
	return validTypes[t]
}

// ValidEvents returns the known hook events, sorted
func ValidEvents() []string {
	return keys(validEvents)
}

// ValidTypes returns the known hook types, sorted
func ValidTypes() []string {
	return keys(validTypes)
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// rootRefPattern matches ${CLAUDE_PLUGIN_ROOT}/<path> anywhere in a shell command,
// including inside wrappers such as bash -lc "..."
var rootRefPattern = regexp.MustCompile(`\$\{CLAUDE_PLUGIN_ROOT\}/(\S+)`)

// RootRef is the outcome of looking for a root-token path in a command
type RootRef struct {
	// Mentioned is true when the command contains the root token at all
	Mentioned bool
	// Path is the plugin-relative path after the token, quotes stripped
	Path string
}

// Found reports whether a plugin-relative path could be extracted
func (r RootRef) Found() bool {
	return r.Path != ""
}

// ExtractRootRef finds the first ${CLAUDE_PLUGIN_ROOT}/<path> reference in cmd.
// Only that substitution form is recognized; anything else is left unverified.
func ExtractRootRef(cmd string) RootRef {
	ref := RootRef{Mentioned: strings.Contains(cmd, "${CLAUDE_PLUGIN_ROOT}")}
	if !ref.Mentioned {
		return ref
	}
	if m := rootRefPattern.FindStringSubmatch(cmd); m != nil {
		ref.Path = strings.Trim(m[1], `"'`)
	}
	return ref
}

// ExtractRootRefs returns every plugin-relative path referenced in s
func ExtractRootRefs(s string) []string {
	var paths []string
	for _, m := range rootRefPattern.FindAllStringSubmatch(s, -1) {
		if p := strings.Trim(m[1], `"'`); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// IsAbsoluteCommand reports whether cmd invokes a program by absolute path
func IsAbsoluteCommand(cmd string) bool {
	return strings.HasPrefix(cmd, "/")
}
