package verify

import (
	"fmt"
	"strings"

	"github.com/egoavara/verify-structure/internal/plugin"
)

// relativePrefix is the form every custom component path must take
const relativePrefix = "./"

// CheckCustomPaths validates the commands and agents path overrides
func CheckCustomPaths(u Unit, c plugin.Components) []string {
	var errs []string
	errs = append(errs, checkPathList(u, c.Commands, "command", "commands")...)
	errs = append(errs, checkPathList(u, c.Agents, "agent", "agents")...)
	return errs
}

func checkPathList(u Unit, paths plugin.PathList, kind, contextName string) []string {
	var errs []string
	for _, p := range paths {
		if !strings.HasPrefix(p, relativePrefix) {
			errs = append(errs, fmt.Sprintf("%s: Custom %s path must start with '%s': %s", u.Name, kind, relativePrefix, p))
			continue
		}
		context := u.Name + "/" + contextName
		if msg := checkRootRef(u, context, p, fmt.Sprintf("Custom %s path not found", kind)); msg != "" {
			errs = append(errs, msg)
		}
	}
	return errs
}
