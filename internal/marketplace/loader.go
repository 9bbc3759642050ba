package marketplace

import (
	"fmt"
	"path/filepath"

	"github.com/egoavara/verify-structure/internal/plugin"
	"github.com/egoavara/verify-structure/internal/schema"
)

const (
	// ManifestDir is the directory containing marketplace.json
	ManifestDir = ".claude-plugin"
	// ManifestFile is the marketplace manifest filename
	ManifestFile = "marketplace.json"
)

// ManifestPath returns the marketplace.json path for a marketplace root
func ManifestPath(marketplacePath string) string {
	return filepath.Join(marketplacePath, ManifestDir, ManifestFile)
}

// LoadManifest loads a marketplace manifest from the given directory and
// validates it, together with every plugin entry, against its schema.
// On any failure the manifest is nil and the messages explain why.
func LoadManifest(marketplacePath string, schemas *schema.Set) (*MarketplaceManifest, []string) {
	manifestPath := ManifestPath(marketplacePath)
	display := filepath.ToSlash(filepath.Join(ManifestDir, ManifestFile))

	if !plugin.Exists(manifestPath) {
		return nil, []string{fmt.Sprintf("Missing %s", display)}
	}

	doc, errs := plugin.ReadJSONFile(manifestPath, display, ManifestFile)
	if len(errs) > 0 {
		return nil, errs
	}

	if errs := Validate(doc, schemas); len(errs) > 0 {
		return nil, errs
	}

	manifest, err := plugin.Decode[MarketplaceManifest](doc)
	if err != nil {
		return nil, []string{fmt.Sprintf("%s: %v", ManifestFile, err)}
	}
	return &manifest, nil
}

// Validate checks an untyped marketplace document and each of its plugin entries
func Validate(doc any, schemas *schema.Set) []string {
	errs := schemas.Marketplace.Validate(doc, ManifestFile)

	root, _ := doc.(map[string]any)
	entries, _ := root["plugins"].([]any)
	for i, raw := range entries {
		name := "unknown"
		if entry, ok := raw.(map[string]any); ok {
			if n, ok := entry["name"].(string); ok {
				name = n
			}
		}
		context := fmt.Sprintf("%s plugins[%d] (%s)", ManifestFile, i, name)
		errs = append(errs, schemas.PluginEntry.Validate(raw, context)...)
	}
	return errs
}

// PluginBase returns the directory plugin sources are resolved against,
// honoring metadata.pluginRoot
func (m *MarketplaceManifest) PluginBase(marketplacePath string) (string, error) {
	if m.Metadata == nil || m.Metadata.PluginRoot == "" {
		return marketplacePath, nil
	}
	return plugin.ResolvePath(marketplacePath, m.Metadata.PluginRoot)
}
