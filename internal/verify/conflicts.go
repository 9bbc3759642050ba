package verify

import (
	"fmt"
	"sort"

	"github.com/egoavara/verify-structure/internal/plugin"
	"golang.org/x/mod/semver"
)

// conflictField compares one field mirrored between marketplace.json and plugin.json.
// diff returns the rendered values and true when both are present and differ.
type conflictField struct {
	name     string
	infoOnly bool
	diff     func(market, local plugin.Metadata) (string, string, bool)
}

// conflictFields in report order. Author metadata often legitimately differs
// between copies, so it is informational only.
var conflictFields = []conflictField{
	{name: "version", diff: func(m, l plugin.Metadata) (string, string, bool) { return diffString(m.Version, l.Version) }},
	{name: "description", diff: func(m, l plugin.Metadata) (string, string, bool) { return diffString(m.Description, l.Description) }},
	{name: "author", infoOnly: true, diff: diffAuthor},
	{name: "homepage", diff: func(m, l plugin.Metadata) (string, string, bool) { return diffString(m.Homepage, l.Homepage) }},
	{name: "repository", diff: func(m, l plugin.Metadata) (string, string, bool) { return diffString(m.Repository, l.Repository) }},
	{name: "license", diff: func(m, l plugin.Metadata) (string, string, bool) { return diffString(m.License, l.License) }},
	{name: "keywords", diff: diffKeywords},
}

// CheckConflicts compares the marketplace entry with the plugin's own manifest.
// Warnings fail strict runs; info messages never fail.
func CheckConflicts(name string, market, local plugin.Metadata) (warnings []string, info []string) {
	for _, f := range conflictFields {
		mv, lv, differs := f.diff(market, local)
		if !differs {
			continue
		}
		msg := fmt.Sprintf("%s: Conflict in '%s' - marketplace: %s, plugin.json: %s (plugin.json takes precedence)",
			name, f.name, mv, lv)
		if f.name == "version" {
			msg += versionHint(*market.Version, *local.Version)
		}
		if f.infoOnly {
			info = append(info, msg)
		} else {
			warnings = append(warnings, msg)
		}
	}
	return warnings, info
}

func diffString(market, local *string) (string, string, bool) {
	if market == nil || local == nil || *market == *local {
		return "", "", false
	}
	return fmt.Sprintf("%q", *market), fmt.Sprintf("%q", *local), true
}

func diffAuthor(m, l plugin.Metadata) (string, string, bool) {
	if m.Author == nil || l.Author == nil || *m.Author == *l.Author {
		return "", "", false
	}
	return m.Author.String(), l.Author.String(), true
}

// diffKeywords compares keywords as sets
func diffKeywords(m, l plugin.Metadata) (string, string, bool) {
	if m.Keywords == nil || l.Keywords == nil {
		return "", "", false
	}
	ms, ls := sortedSet(m.Keywords), sortedSet(l.Keywords)
	if equalStrings(ms, ls) {
		return "", "", false
	}
	return fmt.Sprintf("%q", ms), fmt.Sprintf("%q", ls), true
}

func sortedSet(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// versionHint says which side is newer when both versions are valid semver
func versionHint(market, local string) string {
	mv, lv := "v"+market, "v"+local
	if !semver.IsValid(mv) || !semver.IsValid(lv) {
		return ""
	}
	switch semver.Compare(mv, lv) {
	case -1:
		return "; marketplace entry is behind plugin.json"
	case 1:
		return "; marketplace entry is ahead of plugin.json"
	}
	return ""
}
