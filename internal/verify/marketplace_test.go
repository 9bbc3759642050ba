package verify

import (
	"strings"
	"testing"
)

const validPluginJSON = `{"name": "demo", "version": "1.0.0", "description": "Demo plugin", "author": {"name": "Ada"}}`

// newMarketplace writes marketplace.json plus files and returns a checker for it
func newMarketplace(t *testing.T, plugins string, files map[string]string) *Checker {
	t.Helper()
	root := t.TempDir()
	all := map[string]string{
		".claude-plugin/marketplace.json": `{"name": "tools", "owner": {"name": "Ada"}, "plugins": [` + plugins + `]}`,
	}
	for k, v := range files {
		all[k] = v
	}
	writeTree(t, root, all)
	return NewChecker(root)
}

func TestRunAbortsOnInvalidMarketplace(t *testing.T) {
	root := t.TempDir()
	res := NewChecker(root).Run()
	assertMessages(t, res.MarketplaceErrors, "Missing .claude-plugin/marketplace.json")
	if len(res.Units) != 0 {
		t.Errorf("expected no unit results, got %d", len(res.Units))
	}

	c := newMarketplace(t, `{"name": "Demo", "source": "./demo"}`, map[string]string{
		"demo/README.md":                   "# demo",
		"demo/.claude-plugin/plugin.json": validPluginJSON,
	})
	res = c.Run()
	if len(res.MarketplaceErrors) == 0 || len(res.Units) != 0 {
		t.Errorf("schema failure should abort: %+v", res)
	}
}

// Scenario A: a source directory that does not exist
func TestRunMissingSourceDirectory(t *testing.T) {
	c := newMarketplace(t, `{"name": "demo", "source": "./plugins/demo"}`, nil)
	res := c.Run()

	assertMessages(t, res.MarketplaceErrors, "Plugin 'demo' source directory not found: ./plugins/demo")
	if len(res.Units) != 0 {
		t.Errorf("expected no unit results, got %+v", res.Units)
	}
	if code := Tally(res).ExitCode(false); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

// Scenario B: non-strict entry without plugin.json
func TestRunNonStrictWithoutManifest(t *testing.T) {
	c := newMarketplace(t,
		`{"name": "demo", "source": "./demo", "strict": false, "version": "1.0.0", "description": "Demo plugin"}`,
		map[string]string{"demo/README.md": "# demo"})
	res := c.Run()

	u, ok := res.Unit("demo")
	if !ok {
		t.Fatalf("no result for demo: %+v", res)
	}
	assertMessages(t, u.Get(CategoryManifest))
	if code := Tally(res).ExitCode(true); code != 0 {
		t.Errorf("exit code = %d, want 0; result %+v", code, res)
	}
}

func TestRunStrictEntryRequiresManifest(t *testing.T) {
	c := newMarketplace(t, `{"name": "demo", "source": "./demo"}`, map[string]string{"demo/README.md": "# demo"})
	u, _ := c.Run().Unit("demo")
	assertMessages(t, u.Get(CategoryManifest), "demo: Missing .claude-plugin/plugin.json (required by marketplace.json)")
}

// Scenario C: a hook command using an absolute path
func TestRunAbsoluteHookCommand(t *testing.T) {
	c := newMarketplace(t, `{"name": "demo", "source": "./demo"}`, map[string]string{
		"demo/README.md":                   "# demo",
		"demo/.claude-plugin/plugin.json": validPluginJSON,
		"demo/hooks/hooks.json":           hooksJSON("/home/ada/scripts/check.sh"),
	})
	res := c.Run()

	u, _ := res.Unit("demo")
	assertMessages(t, u.Get(CategoryHooks), "uses absolute path instead of ${CLAUDE_PLUGIN_ROOT}")
	if got := Tally(res); got.Errors != 1 {
		t.Errorf("Tally() = %+v, want exactly one error", got)
	}
}

// Scenario D: entry and manifest differ only in author
func TestRunAuthorConflictIsInfo(t *testing.T) {
	c := newMarketplace(t,
		`{"name": "demo", "source": "./demo", "version": "1.0.0", "description": "Demo plugin", "author": {"name": "Grace"}}`,
		map[string]string{
			"demo/README.md":                   "# demo",
			"demo/.claude-plugin/plugin.json": validPluginJSON,
		})
	res := c.Run()

	got := Tally(res)
	if got.Warnings != 0 || got.Info != 1 || got.Errors != 0 {
		t.Errorf("Tally() = %+v, want 0 warnings and 1 info", got)
	}
	if code := got.ExitCode(true); code != 0 {
		t.Errorf("strict exit code = %d, want 0", code)
	}
}

// Scenario E: entry and manifest disagree on version
func TestRunVersionConflictIsWarning(t *testing.T) {
	c := newMarketplace(t,
		`{"name": "demo", "source": "./demo", "version": "0.9.0"}`,
		map[string]string{
			"demo/README.md":                   "# demo",
			"demo/.claude-plugin/plugin.json": validPluginJSON,
		})
	res := c.Run()

	got := Tally(res)
	if got.Warnings != 1 || got.Errors != 0 {
		t.Fatalf("Tally() = %+v, want exactly one warning", got)
	}
	u, _ := res.Unit("demo")
	assertMessages(t, u.Get(CategoryWarnings), "marketplace entry is behind plugin.json")
	if got.ExitCode(false) != 0 || got.ExitCode(true) != 1 {
		t.Errorf("exit codes normal=%d strict=%d, want 0 and 1", got.ExitCode(false), got.ExitCode(true))
	}
}

func TestRunEntryDispatch(t *testing.T) {
	c := newMarketplace(t, strings.Join([]string{
		`{"name": "remote", "source": {"source": "github", "repo": "org/remote"}}`,
		`{"name": "broken", "source": {"source": "github"}}`,
		`{"name": "blank-repo", "source": {"source": "github", "repo": ""}}`,
		`{"name": "empty", "source": ""}`,
		`{"name": "escape", "source": "../outside"}`,
		`{"name": "skipped", "source": "./skipped", "skip": true}`,
		`{"name": "file", "source": "./file.txt"}`,
		`{"name": "remote", "source": {"source": "github", "repo": "org/other"}}`,
	}, ","), map[string]string{
		"skipped/": "",
		"file.txt": "x",
	})
	res := c.Run()

	assertMessages(t, res.MarketplaceErrors,
		"Plugin 'broken' has object 'source' missing 'repo' or 'url'",
		"Plugin 'empty' missing 'source' field",
		"Plugin 'escape': Path escapes base directory: ../outside",
		"Plugin 'file' source is not a directory: ./file.txt",
		"Duplicate plugin name 'remote' in marketplace.json",
	)

	remote, ok := res.Unit("remote")
	if !ok {
		t.Fatal("missing result for external plugin")
	}
	assertMessages(t, remote.Get(CategoryInfo), "remote: External source (org/remote); not validated locally")

	blank, ok := res.Unit("blank-repo")
	if !ok {
		t.Fatal("an empty repo key still marks the source as external")
	}
	assertMessages(t, blank.Get(CategoryInfo), "blank-repo: External source (); not validated locally")

	skipped, ok := res.Unit("skipped")
	if !ok {
		t.Fatal("missing result for skipped plugin")
	}
	assertMessages(t, skipped.Get(CategoryInfo), "skipped: Skipped (skip: true in marketplace.json)")
	if skipped.HasErrors() {
		t.Errorf("skipped plugin should not be checked: %+v", skipped)
	}
}

func TestRunPluginRoot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".claude-plugin/marketplace.json": `{"name": "tools", "owner": {"name": "Ada"}, "metadata": {"pluginRoot": "./plugins"},
			"plugins": [{"name": "demo", "source": "./demo"}]}`,
		"plugins/demo/README.md":                   "# demo",
		"plugins/demo/.claude-plugin/plugin.json": validPluginJSON,
	})

	res := NewChecker(root).Run()
	if got := Tally(res); got.Errors != 0 {
		t.Errorf("unexpected errors: %+v", res)
	}
	if _, ok := res.Unit("demo"); !ok {
		t.Error("plugin under pluginRoot was not checked")
	}
}

func TestRunFullPlugin(t *testing.T) {
	c := newMarketplace(t,
		`{"name": "demo", "source": "./demo", "version": "1.0.0", "commands": ["./extra/deploy.md"]}`,
		map[string]string{
			"demo/README.md":                   "# demo",
			"demo/.claude-plugin/plugin.json": `{"name": "demo", "version": "1.0.0", "description": "Demo plugin", "agents": "./extra/agent.md", "mcpServers": "./config/mcp.json"}`,
			"demo/skills/helper/SKILL.md":     validSkill,
			"demo/commands/review.md":         "---\ndescription: Review\n---\n",
			"demo/agents/reviewer.md":         "---\ndescription: Reviews\ncapabilities: [review]\n---\n",
			"demo/hooks/hooks.json":           hooksJSON("${CLAUDE_PLUGIN_ROOT}/scripts/fmt.sh"),
			"demo/scripts/fmt.sh":             "#!/bin/sh\n",
			"demo/extra/agent.md":             "---\ndescription: x\ncapabilities: [x]\n---\n",
			"demo/config/mcp.json":            `{"mcpServers": {"db": {"command": "${CLAUDE_PLUGIN_ROOT}/bin/db"}}}`,
			"demo/bin/db":                     "",
		})
	res := c.Run()

	if got := Tally(res); got != (Totals{}) {
		t.Errorf("expected a clean run, got %+v: %+v", got, res)
	}
}

func TestRunInvalidPluginManifest(t *testing.T) {
	c := newMarketplace(t, `{"name": "demo", "source": "./demo"}`, map[string]string{
		"demo/README.md":                   "# demo",
		"demo/.claude-plugin/plugin.json": `{"name": "demo", "version": "v1", "hooks": "./missing.json"}`,
	})
	u, _ := c.Run().Unit("demo")

	assertMessages(t, u.Get(CategoryManifest), "demo: version: ")
	assertMessages(t, u.Get(CategoryHooks), "demo/hooks: File not found: ./missing.json")
}
