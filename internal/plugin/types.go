package plugin

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	// ManifestDir is the per-plugin metadata directory
	ManifestDir = ".claude-plugin"
	// ManifestFile is the plugin manifest filename
	ManifestFile = "plugin.json"
	// ReadmeFile must exist at every plugin root
	ReadmeFile = "README.md"
	// RootToken is replaced with the installed plugin root at runtime
	RootToken = "${CLAUDE_PLUGIN_ROOT}"
)

// PluginManifest represents the .claude-plugin/plugin.json structure
type PluginManifest struct {
	Name string `json:"name"`
	Metadata
	Components
}

// Metadata holds the fields a marketplace entry may mirror from plugin.json.
// Absent fields stay nil so that an empty value can still be compared.
type Metadata struct {
	Version     *string  `json:"version,omitempty"`
	Description *string  `json:"description,omitempty"`
	Author      *Author  `json:"author,omitempty"`
	Homepage    *string  `json:"homepage,omitempty"`
	Repository  *string  `json:"repository,omitempty"`
	License     *string  `json:"license,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// Components holds the component path and configuration overrides
type Components struct {
	Commands   PathList  `json:"commands,omitempty"`
	Agents     PathList  `json:"agents,omitempty"`
	Hooks      ConfigRef `json:"hooks,omitempty"`
	MCPServers ConfigRef `json:"mcpServers,omitempty"`
}

// Author represents the plugin author information
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
}

func (a Author) String() string {
	s := fmt.Sprintf("{name: %q", a.Name)
	if a.Email != "" {
		s += fmt.Sprintf(", email: %q", a.Email)
	}
	if a.URL != "" {
		s += fmt.Sprintf(", url: %q", a.URL)
	}
	return s + "}"
}

// PathList is a component path override: a single string or a list of strings
type PathList []string

// UnmarshalJSON accepts both "./a.md" and ["./a.md", "./b.md"]
func (p *PathList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*p = nil
		} else {
			*p = PathList{single}
		}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("path list must be a string or an array of strings: %w", err)
	}
	*p = list
	return nil
}

// ConfigRef points at a JSON configuration either by path or inline
type ConfigRef struct {
	Path   string
	Inline json.RawMessage
}

// HasInline reports whether an inline object is present. An empty object
// still counts and replaces the default file.
func (c ConfigRef) HasInline() bool {
	if len(bytes.TrimSpace(c.Inline)) == 0 {
		return false
	}
	var obj map[string]json.RawMessage
	return json.Unmarshal(c.Inline, &obj) == nil && obj != nil
}

// UnmarshalJSON accepts a path string or an inline object
func (c *ConfigRef) UnmarshalJSON(data []byte) error {
	var path string
	if err := json.Unmarshal(data, &path); err == nil {
		*c = ConfigRef{Path: path}
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("config reference must be a path or an object: %w", err)
	}
	*c = ConfigRef{Inline: append(json.RawMessage(nil), data...)}
	return nil
}

// MarshalJSON writes the reference back in the form it was read
func (c ConfigRef) MarshalJSON() ([]byte, error) {
	if len(c.Inline) > 0 {
		return c.Inline, nil
	}
	if c.Path != "" {
		return json.Marshal(c.Path)
	}
	return []byte("null"), nil
}
