package verify

import (
	"fmt"

	"github.com/egoavara/verify-structure/internal/hooks"
	"github.com/egoavara/verify-structure/internal/mcp"
	"github.com/egoavara/verify-structure/internal/plugin"
)

// CheckMCPServers validates the MCP server configuration of a plugin, loaded
// with the same precedence as hooks: inline, declared path, then .mcp.json.
func CheckMCPServers(u Unit, ref plugin.ConfigRef) []string {
	context := u.Name + "/mcp"
	doc, errs := loadConfig(u, ref, mcp.DefaultFile, context)
	if len(errs) > 0 || len(doc) == 0 {
		return errs
	}

	if _, ok := doc["mcpServers"]; !ok {
		return []string{fmt.Sprintf("%s: MCP configuration missing 'mcpServers' key", u.Name)}
	}

	cfg, err := plugin.Decode[mcp.Config](doc)
	if err != nil {
		return []string{fmt.Sprintf("%s: Invalid MCP configuration: %v", u.Name, err)}
	}

	for _, name := range cfg.ServerNames() {
		server := cfg.MCPServers[name]
		if server.Command == nil {
			if !server.IsRemote() {
				errs = append(errs, fmt.Sprintf("%s: MCP server '%s' missing 'command' field", u.Name, name))
			}
			continue
		}

		command := server.CommandLine()
		ref := hooks.ExtractRootRef(command)
		if !ref.Mentioned && hooks.IsAbsoluteCommand(command) {
			errs = append(errs, fmt.Sprintf("%s: MCP server '%s' uses absolute path instead of %s: %s",
				u.Name, name, plugin.RootToken, command))
		}

		refs := hooks.ExtractRootRefs(command)
		for _, arg := range server.Args {
			refs = append(refs, hooks.ExtractRootRefs(arg)...)
		}
		notFound := fmt.Sprintf("MCP server '%s' references missing file", name)
		for _, rel := range refs {
			if msg := checkRootRef(u, context, rel, notFound); msg != "" {
				errs = append(errs, msg)
			}
		}
	}
	return errs
}
