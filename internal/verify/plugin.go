package verify

import (
	"fmt"
	"path/filepath"

	"github.com/egoavara/verify-structure/internal/marketplace"
	"github.com/egoavara/verify-structure/internal/plugin"
)

// CheckPlugin validates one plugin directory: its manifest, its conflicts with
// the marketplace entry and every component. entry may be nil when the plugin
// is checked on its own, in which case plugin.json is required.
func (c *Checker) CheckPlugin(u Unit, entry *marketplace.PluginEntry) UnitResult {
	res := NewUnitResult(u.Name)

	manifestPath := filepath.Join(u.Dir, plugin.ManifestDir, plugin.ManifestFile)
	hasManifest := plugin.Exists(manifestPath)
	requireManifest := entry == nil || entry.RequiresManifest()

	// data is what component checks read overrides from: plugin.json when it
	// exists, otherwise the marketplace entry for non-strict plugins
	var data plugin.PluginManifest
	switch {
	case hasManifest:
		manifest, errs := c.loadPluginManifest(u, manifestPath)
		res.Add(CategoryManifest, errs...)
		if manifest != nil {
			data = *manifest
		}
	case requireManifest:
		res.Add(CategoryManifest, fmt.Sprintf("%s: Missing %s/%s (required by marketplace.json)",
			u.Name, plugin.ManifestDir, plugin.ManifestFile))
	default:
		data = plugin.PluginManifest{Name: entry.Name, Metadata: entry.Metadata, Components: entry.Components}
		c.logger.Debug("using marketplace entry as manifest", "plugin", u.Name)
	}

	if entry != nil && hasManifest {
		warnings, info := CheckConflicts(u.Name, entry.Metadata, data.Metadata)
		res.Add(CategoryWarnings, warnings...)
		res.Add(CategoryInfo, info...)
	}

	res.Add(CategoryManifest, CheckReadme(u)...)
	res.Add(CategoryPlacement, CheckPlacement(u)...)
	res.Add(CategorySkills, CheckSkills(u)...)
	res.Add(CategoryCommands, CheckCommands(u)...)
	res.Add(CategoryAgents, CheckAgents(u)...)

	hookErrs, hookInfo := CheckHooks(u, data.Hooks)
	res.Add(CategoryHooks, hookErrs...)
	res.Add(CategoryInfo, hookInfo...)

	res.Add(CategoryMCP, CheckMCPServers(u, data.MCPServers)...)
	res.Add(CategoryPaths, CheckCustomPaths(u, data.Components)...)

	return res
}

// loadPluginManifest reads and schema-checks plugin.json. The manifest is
// returned whenever it could be decoded, even if the schema reported problems,
// so that component checks still see its overrides.
func (c *Checker) loadPluginManifest(u Unit, path string) (*plugin.PluginManifest, []string) {
	doc, errs := plugin.ReadJSONFile(path, plugin.ManifestFile, u.Name)
	if len(errs) > 0 {
		return nil, errs
	}

	errs = c.schemas.Plugin.Validate(doc, u.Name)

	manifest, err := plugin.Decode[plugin.PluginManifest](doc)
	if err != nil {
		c.logger.Debug("plugin.json could not be decoded", "plugin", u.Name, "error", err)
		if len(errs) == 0 {
			errs = append(errs, fmt.Sprintf("%s: %s: %v", u.Name, plugin.ManifestFile, err))
		}
		return nil, errs
	}
	return &manifest, errs
}
