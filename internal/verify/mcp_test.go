package verify

import (
	"encoding/json"
	"testing"

	"github.com/egoavara/verify-structure/internal/plugin"
)

func TestCheckMCPServers(t *testing.T) {
	tests := []struct {
		name   string
		config string
		files  map[string]string
		want   []string
	}{
		{"valid local", `{"mcpServers": {"db": {"command": "${CLAUDE_PLUGIN_ROOT}/bin/db", "args": ["--config", "${CLAUDE_PLUGIN_ROOT}/db.json"]}}}`,
			map[string]string{"bin/db": "", "db.json": "{}"}, nil},
		{"npx", `{"mcpServers": {"fs": {"command": "npx", "args": ["-y", "server-fs"]}}}`, nil, nil},
		{"remote", `{"mcpServers": {"api": {"type": "http", "url": "https://mcp.example.com"}}}`, nil, nil},
		{"missing key", `{"servers": {}}`, nil, []string{"demo: MCP configuration missing 'mcpServers' key"}},
		{"missing command", `{"mcpServers": {"a": {"args": []}}}`, nil, []string{"demo: MCP server 'a' missing 'command' field"}},
		{"sse without url", `{"mcpServers": {"a": {"type": "sse"}}}`, nil, []string{"demo: MCP server 'a' missing 'command' field"}},
		{"absolute", `{"mcpServers": {"a": {"command": "/opt/bin/server"}}}`, nil, []string{
			"demo: MCP server 'a' uses absolute path instead of ${CLAUDE_PLUGIN_ROOT}: /opt/bin/server",
		}},
		{"missing arg file", `{"mcpServers": {"a": {"command": "node", "args": ["${CLAUDE_PLUGIN_ROOT}/dist/index.js"]}}}`, nil, []string{
			"demo: MCP server 'a' references missing file: dist/index.js",
		}},
		{"bad shape", `{"mcpServers": {"a": {"command": 5}}}`, nil, []string{"demo: Invalid MCP configuration"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			files := map[string]string{".mcp.json": tc.config}
			for k, v := range tc.files {
				files[k] = v
			}
			u := newUnit(t, "demo", files)
			assertMessages(t, CheckMCPServers(u, plugin.ConfigRef{}), tc.want...)
		})
	}
}

func TestCheckMCPServersInlineAndPath(t *testing.T) {
	u := newUnit(t, "demo", map[string]string{
		"config/mcp.json": `{"mcpServers": {"a": {}}}`,
	})

	inline := plugin.ConfigRef{Inline: json.RawMessage(`{"mcpServers": {"b": {"command": "uvx"}}}`)}
	assertMessages(t, CheckMCPServers(u, inline))

	assertMessages(t, CheckMCPServers(u, plugin.ConfigRef{Path: "./config/mcp.json"}),
		"demo: MCP server 'a' missing 'command' field")

	assertMessages(t, CheckMCPServers(u, plugin.ConfigRef{}))
}

func TestCheckMCPServersEmptyInlineSkipsDefault(t *testing.T) {
	u := newUnit(t, "demo", map[string]string{
		".mcp.json": `{"mcpServers": {"a": {}}}`,
	})
	assertMessages(t, CheckMCPServers(u, plugin.ConfigRef{}), "demo: MCP server 'a' missing 'command' field")
	assertMessages(t, CheckMCPServers(u, plugin.ConfigRef{Inline: json.RawMessage(`{}`)}))
}
