package verify

import (
	"testing"

	"github.com/egoavara/verify-structure/internal/plugin"
)

func str(s string) *string { return &s }

func TestCheckConflictsEqualFieldsAreSilent(t *testing.T) {
	values := []plugin.Metadata{
		{},
		{Version: str(""), Description: str(""), Homepage: str(""), Repository: str(""), License: str(""), Keywords: []string{}},
		{
			Version:     str("1.0.0"),
			Description: str("Reviews code"),
			Author:      &plugin.Author{Name: "Ada", Email: "ada@example.com"},
			Homepage:    str("https://example.com"),
			Repository:  str("https://github.com/org/repo"),
			License:     str("MIT"),
			Keywords:    []string{"review", "lint"},
		},
	}
	for i, m := range values {
		// same values held in distinct memory
		l := m
		if m.Version != nil {
			l.Version = str(*m.Version)
		}
		if m.Author != nil {
			a := *m.Author
			l.Author = &a
		}
		warnings, info := CheckConflicts("demo", m, l)
		if len(warnings)+len(info) != 0 {
			t.Errorf("case %d: equal metadata produced warnings=%q info=%q", i, warnings, info)
		}
	}
}

func TestCheckConflictsKeywordsAsSets(t *testing.T) {
	m := plugin.Metadata{Keywords: []string{"b", "a", "a"}}
	l := plugin.Metadata{Keywords: []string{"a", "b"}}
	if w, i := CheckConflicts("demo", m, l); len(w)+len(i) != 0 {
		t.Errorf("reordered keywords should not conflict: %q %q", w, i)
	}

	l.Keywords = []string{"a", "c"}
	w, _ := CheckConflicts("demo", m, l)
	assertMessages(t, w, `demo: Conflict in 'keywords' - marketplace: ["a" "b"], plugin.json: ["a" "c"]`)
}

func TestCheckConflictsOneSidedFieldsAreSilent(t *testing.T) {
	m := plugin.Metadata{Version: str("1.0.0"), License: str("MIT")}
	l := plugin.Metadata{Description: str("x")}
	if w, i := CheckConflicts("demo", m, l); len(w)+len(i) != 0 {
		t.Errorf("fields present on one side only should not conflict: %q %q", w, i)
	}
}

func TestCheckConflicts(t *testing.T) {
	m := plugin.Metadata{
		Version:     str("1.0.0"),
		Description: str("old"),
		Author:      &plugin.Author{Name: "Ada"},
		License:     str("MIT"),
	}
	l := plugin.Metadata{
		Version:     str("1.2.0"),
		Description: str("new"),
		Author:      &plugin.Author{Name: "Grace"},
		License:     str("MIT"),
	}

	warnings, info := CheckConflicts("demo", m, l)
	assertMessages(t, warnings,
		`demo: Conflict in 'version' - marketplace: "1.0.0", plugin.json: "1.2.0" (plugin.json takes precedence); marketplace entry is behind plugin.json`,
		`demo: Conflict in 'description' - marketplace: "old", plugin.json: "new" (plugin.json takes precedence)`,
	)
	assertMessages(t, info, `demo: Conflict in 'author' - marketplace: {name: "Ada"}, plugin.json: {name: "Grace"}`)
}

func TestVersionHint(t *testing.T) {
	tests := []struct {
		market, local, want string
	}{
		{"1.0.0", "1.0.1", "; marketplace entry is behind plugin.json"},
		{"2.0.0", "1.9.9", "; marketplace entry is ahead of plugin.json"},
		{"1.0", "1.0.0", ""},
		{"latest", "1.0.0", ""},
	}
	for _, tc := range tests {
		if got := versionHint(tc.market, tc.local); got != tc.want {
			t.Errorf("versionHint(%q, %q) = %q, want %q", tc.market, tc.local, got, tc.want)
		}
	}
}
