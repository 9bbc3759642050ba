package verify

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/egoavara/verify-structure/internal/hooks"
	"github.com/egoavara/verify-structure/internal/plugin"
	"github.com/egoavara/verify-structure/internal/search"
)

// CheckHooks validates the hooks configuration of a plugin. Inline
// configuration wins over a declared path, which wins over hooks/hooks.json.
// The second return value holds commands that could not be verified.
func CheckHooks(u Unit, ref plugin.ConfigRef) (errs []string, info []string) {
	context := u.Name + "/hooks"
	doc, errs := loadConfig(u, ref, hooks.DefaultFile, context)
	if len(errs) > 0 || len(doc) == 0 {
		return errs, nil
	}

	if _, ok := doc["hooks"]; !ok {
		return []string{fmt.Sprintf("%s: Hooks configuration missing 'hooks' key", u.Name)}, nil
	}

	cfg, err := plugin.Decode[hooks.Config](doc)
	if err != nil {
		return []string{fmt.Sprintf("%s: Invalid hooks configuration: %v", u.Name, err)}, nil
	}

	for _, event := range cfg.Events() {
		if !hooks.IsValidEvent(event) {
			errs = append(errs, fmt.Sprintf("%s: Invalid hook event '%s' (valid: %s)%s",
				u.Name, event, strings.Join(hooks.ValidEvents(), ", "), didYouMean(event, hooks.ValidEvents())))
		}

		for _, matcher := range cfg.Hooks[event] {
			for _, h := range matcher.Hooks {
				if h.Type == nil {
					continue
				}
				if !hooks.IsValidType(*h.Type) {
					errs = append(errs, fmt.Sprintf("%s: Invalid hook type '%s' (valid: %s)%s",
						u.Name, *h.Type, strings.Join(hooks.ValidTypes(), ", "), didYouMean(*h.Type, hooks.ValidTypes())))
				}
				if *h.Type != hooks.TypeCommand || h.Command == "" {
					continue
				}
				e, i := checkHookCommand(u, h.Command)
				errs = append(errs, e...)
				info = append(info, i...)
			}
		}
	}
	return errs, info
}

func checkHookCommand(u Unit, cmd string) (errs []string, info []string) {
	ref := hooks.ExtractRootRef(cmd)
	switch {
	case ref.Found():
		if msg := checkRootRef(u, u.Name+"/hooks", ref.Path, "Hook command script not found"); msg != "" {
			errs = append(errs, msg)
		}
	case ref.Mentioned:
		info = append(info, fmt.Sprintf(
			"%s: Hook command contains %s but no script path could be extracted; not verified: %s",
			u.Name, plugin.RootToken, cmd))
	case hooks.IsAbsoluteCommand(cmd):
		errs = append(errs, fmt.Sprintf("%s: Hook command uses absolute path instead of %s: %s",
			u.Name, plugin.RootToken, cmd))
	}
	return errs, info
}

// checkRootRef verifies that a root-relative path stays inside the plugin and exists
func checkRootRef(u Unit, context, rel, notFound string) string {
	full, err := plugin.ResolvePath(u.Dir, rel)
	if err != nil {
		if errors.Is(err, plugin.ErrPathEscapes) {
			return fmt.Sprintf("%s: Path escapes base directory: %s", context, rel)
		}
		return fmt.Sprintf("%s: Invalid path: %v", context, err)
	}
	if !plugin.Exists(full) {
		return fmt.Sprintf("%s: %s: %s", u.Name, notFound, rel)
	}
	return ""
}

// loadConfig loads a JSON object configuration from an inline value, a
// declared path or a default file, in that order. A nil map and no messages
// means nothing is configured.
func loadConfig(u Unit, ref plugin.ConfigRef, defaultFile, context string) (map[string]any, []string) {
	var doc any
	switch {
	case ref.HasInline():
		var err error
		if doc, err = plugin.DecodeRaw[any](ref.Inline); err != nil {
			return nil, []string{fmt.Sprintf("%s: Invalid inline configuration: %v", context, err)}
		}
	case ref.Path != "":
		var errs []string
		if doc, errs = plugin.LoadJSON(u.Dir, ref.Path, context); len(errs) > 0 {
			return nil, errs
		}
	case plugin.Exists(filepath.Join(u.Dir, defaultFile)):
		var errs []string
		if doc, errs = plugin.LoadJSON(u.Dir, defaultFile, context); len(errs) > 0 {
			return nil, errs
		}
	default:
		return nil, nil
	}

	if doc == nil {
		return nil, nil
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, []string{fmt.Sprintf("%s: Configuration must be a JSON object", context)}
	}
	return obj, nil
}

// didYouMean formats a suggestion suffix, or "" when nothing is close
func didYouMean(name string, known []string) string {
	if s, ok := search.Suggest(name, known); ok {
		return fmt.Sprintf(" - did you mean '%s'?", s)
	}
	return ""
}
