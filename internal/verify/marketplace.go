// Package verify checks a Claude Code plugin marketplace on disk.
//
// A run loads .claude-plugin/marketplace.json, validates it against its
// schema and then checks every local plugin it declares. Only a missing,
// unreadable or schema-invalid marketplace.json stops a run early; every
// other finding is collected and the run moves on to the next plugin.
//
// Nothing is written to disk.
package verify

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/egoavara/verify-structure/internal/marketplace"
	"github.com/egoavara/verify-structure/internal/plugin"
	"github.com/egoavara/verify-structure/internal/schema"
)

// Checker verifies the marketplace rooted at root
type Checker struct {
	root    string
	schemas *schema.Set
	logger  *slog.Logger
}

// Option configures a Checker
type Option func(*Checker)

// WithLogger sets the logger used for debug tracing
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewChecker creates a checker for the marketplace at root. Schemas are
// compiled fresh for every checker.
func NewChecker(root string, opts ...Option) *Checker {
	c := &Checker{
		root:   root,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.schemas = schema.NewSet()
	return c
}

// Run walks marketplace.json and checks every plugin it declares
func (c *Checker) Run() *Result {
	res := &Result{}

	c.logger.Debug("loading marketplace", "root", c.root)
	manifest, errs := marketplace.LoadManifest(c.root, c.schemas)
	if len(errs) > 0 {
		c.logger.Debug("marketplace rejected, aborting", "errors", len(errs))
		res.MarketplaceErrors = errs
		return res
	}

	base, err := manifest.PluginBase(c.root)
	if err != nil {
		res.MarketplaceErrors = append(res.MarketplaceErrors, fmt.Sprintf("metadata.pluginRoot: %s", pathMessage(err)))
		base = ""
	}

	seen := make(map[string]bool, len(manifest.Plugins))
	for i := range manifest.Plugins {
		entry := &manifest.Plugins[i]
		if seen[entry.Name] {
			res.MarketplaceErrors = append(res.MarketplaceErrors,
				fmt.Sprintf("Duplicate plugin name '%s' in %s", entry.Name, marketplace.ManifestFile))
			continue
		}
		seen[entry.Name] = true
		c.checkEntry(res, base, entry)
	}

	c.logger.Debug("marketplace checked", "plugins", len(res.Units), "marketplace_errors", len(res.MarketplaceErrors))
	return res
}

// checkEntry resolves one plugin entry and dispatches it to CheckPlugin
func (c *Checker) checkEntry(res *Result, base string, entry *marketplace.PluginEntry) {
	name := entry.Name
	src := entry.Source
	log := c.logger.With("plugin", name)

	if src.IsObject {
		if !src.IsExternal() {
			res.MarketplaceErrors = append(res.MarketplaceErrors,
				fmt.Sprintf("Plugin '%s' has object 'source' missing 'repo' or 'url'", name))
			return
		}
		log.Debug("external source, skipping", "source", src.GetSourceURL())
		u := NewUnitResult(name)
		u.Add(CategoryInfo, fmt.Sprintf("%s: External source (%s); not validated locally", name, src.GetSourceURL()))
		res.Units = append(res.Units, u)
		return
	}

	if src.Path == "" {
		res.MarketplaceErrors = append(res.MarketplaceErrors, fmt.Sprintf("Plugin '%s' missing 'source' field", name))
		return
	}
	if base == "" {
		log.Debug("plugin root unresolved, skipping")
		return
	}

	dir, err := plugin.ResolvePath(base, src.Path)
	if err != nil {
		res.MarketplaceErrors = append(res.MarketplaceErrors, fmt.Sprintf("Plugin '%s': %s", name, pathMessage(err)))
		return
	}
	if !plugin.Exists(dir) {
		res.MarketplaceErrors = append(res.MarketplaceErrors,
			fmt.Sprintf("Plugin '%s' source directory not found: %s", name, src.Path))
		return
	}
	if !plugin.IsDir(dir) {
		res.MarketplaceErrors = append(res.MarketplaceErrors,
			fmt.Sprintf("Plugin '%s' source is not a directory: %s", name, src.Path))
		return
	}

	if entry.Skip {
		log.Debug("skip flag set")
		u := NewUnitResult(name)
		u.Add(CategoryInfo, fmt.Sprintf("%s: Skipped (skip: true in %s)", name, marketplace.ManifestFile))
		res.Units = append(res.Units, u)
		return
	}

	log.Debug("checking plugin", "dir", dir, "require_manifest", entry.RequiresManifest())
	res.Units = append(res.Units, c.CheckPlugin(Unit{Name: name, Dir: dir}, entry))
}

func pathMessage(err error) string {
	var pathErr *plugin.PathError
	if errors.As(err, &pathErr) && errors.Is(err, plugin.ErrPathEscapes) {
		return fmt.Sprintf("Path escapes base directory: %s", pathErr.Path)
	}
	return fmt.Sprintf("Invalid path: %v", err)
}
