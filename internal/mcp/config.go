package mcp

import (
	"sort"
	"strings"
)

// DefaultFile is the MCP configuration path used when none is declared
const DefaultFile = ".mcp.json"

// MCPServerConfig represents a single MCP server configuration from .mcp.json
type MCPServerConfig struct {
	Type    string            `json:"type,omitempty"`
	Command *string           `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	URL     string            `json:"url,omitempty"`
	Cwd     string            `json:"cwd,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// Config represents the wrapped format: { "mcpServers": { ... } }
type Config struct {
	MCPServers map[string]MCPServerConfig `json:"mcpServers"`
}

// ServerNames returns the configured server names in sorted order
func (c *Config) ServerNames() []string {
	names := make([]string, 0, len(c.MCPServers))
	for name := range c.MCPServers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRemote reports whether the server is reached over HTTP/SSE instead of a local command
func (s MCPServerConfig) IsRemote() bool {
	switch strings.ToLower(s.Type) {
	case "http", "sse":
		return s.URL != ""
	}
	return false
}

// CommandLine returns the command, or "" when it is not set
func (s MCPServerConfig) CommandLine() string {
	if s.Command == nil {
		return ""
	}
	return *s.Command
}
