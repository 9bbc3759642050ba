package verify

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTree creates files under root; keys are slash-separated relative paths.
// A key ending in "/" creates an empty directory.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			if err := os.MkdirAll(path, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", rel, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

// newUnit creates a plugin directory with a README and the given files
func newUnit(t *testing.T, name string, files map[string]string) Unit {
	t.Helper()
	dir := t.TempDir()
	all := map[string]string{"README.md": "# " + name + "\n"}
	for k, v := range files {
		all[k] = v
	}
	writeTree(t, dir, all)
	return Unit{Name: name, Dir: dir}
}

func assertMessages(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d messages %q, want %d containing %q", len(got), got, len(want), want)
	}
	for i := range want {
		if !strings.Contains(got[i], want[i]) {
			t.Errorf("message %d = %q, want it to contain %q", i, got[i], want[i])
		}
	}
}
