package marketplace

import (
	"encoding/json"
	"fmt"

	"github.com/egoavara/verify-structure/internal/plugin"
)

// MarketplaceManifest represents the .claude-plugin/marketplace.json structure
type MarketplaceManifest struct {
	Name     string               `json:"name"`
	Owner    Owner                `json:"owner"`
	Metadata *MarketplaceMetadata `json:"metadata,omitempty"`
	Plugins  []PluginEntry        `json:"plugins"`
}

// Owner represents the marketplace owner information
type Owner struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// MarketplaceMetadata contains optional metadata for the marketplace
type MarketplaceMetadata struct {
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
	PluginRoot  string `json:"pluginRoot,omitempty"`
}

// PluginEntry represents a plugin entry in the marketplace
type PluginEntry struct {
	Name     string       `json:"name"`
	Source   PluginSource `json:"source"`
	Strict   *bool        `json:"strict,omitempty"`
	Skip     bool         `json:"skip,omitempty"`
	Category string       `json:"category,omitempty"`
	Tags     []string     `json:"tags,omitempty"`
	plugin.Metadata
	plugin.Components
}

// RequiresManifest reports whether the plugin must ship its own plugin.json.
// Entries are strict unless they say otherwise.
func (p *PluginEntry) RequiresManifest() bool {
	return p.Strict == nil || *p.Strict
}

// PluginSource is either a relative path (string form) or an external
// reference (object form)
type PluginSource struct {
	Path string

	// Object form. HasRepo and HasURL record key presence, even for "".
	IsObject bool
	Source   string
	Repo     string
	URL      string
	HasRepo  bool
	HasURL   bool
}

// IsExternal reports whether the source points outside this repository
func (s PluginSource) IsExternal() bool {
	return s.IsObject && (s.HasRepo || s.HasURL)
}

// GetSourceURL returns the external reference, repo first
func (s PluginSource) GetSourceURL() string {
	if s.HasRepo {
		return s.Repo
	}
	return s.URL
}

type sourceObject struct {
	Source string  `json:"source"`
	Repo   *string `json:"repo,omitempty"`
	URL    *string `json:"url,omitempty"`
}

// UnmarshalJSON accepts "./plugins/x" or {"source": "github", "repo": "org/x"}
func (s *PluginSource) UnmarshalJSON(data []byte) error {
	var path string
	if err := json.Unmarshal(data, &path); err == nil {
		*s = PluginSource{Path: path}
		return nil
	}

	var obj sourceObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("source must be a path or an object: %w", err)
	}
	*s = PluginSource{IsObject: true, Source: obj.Source}
	if obj.Repo != nil {
		s.Repo, s.HasRepo = *obj.Repo, true
	}
	if obj.URL != nil {
		s.URL, s.HasURL = *obj.URL, true
	}
	return nil
}

// MarshalJSON writes the source back in the form it was read
func (s PluginSource) MarshalJSON() ([]byte, error) {
	if !s.IsObject {
		return json.Marshal(s.Path)
	}
	obj := map[string]string{"source": s.Source}
	if s.HasRepo {
		obj["repo"] = s.Repo
	}
	if s.HasURL {
		obj["url"] = s.URL
	}
	return json.Marshal(obj)
}
