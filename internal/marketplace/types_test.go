package marketplace

import (
	"encoding/json"
	"testing"
)

func TestPluginSourceUnmarshal(t *testing.T) {
	tests := []struct {
		raw      string
		path     string
		object   bool
		external bool
		url      string
	}{
		{`"./plugins/a"`, "./plugins/a", false, false, ""},
		{`""`, "", false, false, ""},
		{`{"source": "github", "repo": "org/a"}`, "", true, true, "org/a"},
		{`{"source": "url", "url": "https://example.com/a.git"}`, "", true, true, "https://example.com/a.git"},
		{`{"source": "github"}`, "", true, false, ""},
		{`{"source": "github", "repo": ""}`, "", true, true, ""},
		{`{"source": "url", "url": ""}`, "", true, true, ""},
	}

	for _, tc := range tests {
		var s PluginSource
		if err := json.Unmarshal([]byte(tc.raw), &s); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.raw, err)
		}
		if s.Path != tc.path || s.IsObject != tc.object || s.IsExternal() != tc.external || s.GetSourceURL() != tc.url {
			t.Errorf("%s decoded to %+v", tc.raw, s)
		}
	}

	var s PluginSource
	if err := json.Unmarshal([]byte(`7`), &s); err == nil {
		t.Error("expected error for numeric source")
	}
}

func TestPluginSourceMarshalKeepsForm(t *testing.T) {
	for _, raw := range []string{`"./a"`, `{"repo":"org/a","source":"github"}`, `{"repo":"","source":"github"}`} {
		var s PluginSource
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			t.Fatal(err)
		}
		out, err := json.Marshal(s)
		if err != nil {
			t.Fatal(err)
		}
		if string(out) != raw {
			t.Errorf("round trip of %s produced %s", raw, out)
		}
	}
}
