package verify

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/egoavara/verify-structure/internal/frontmatter"
	"github.com/egoavara/verify-structure/internal/plugin"
)

// Unit identifies the plugin being checked
type Unit struct {
	Name string
	Dir  string
}

// misplacedComponents must live at the plugin root, never under .claude-plugin/
var misplacedComponents = []string{"commands", "agents", "skills", "hooks"}

const (
	skillsDir   = "skills"
	commandsDir = "commands"
	agentsDir   = "agents"
	skillFile   = "SKILL.md"
)

var (
	skillFields   = []string{"name", "description"}
	commandFields = []string{"description"}
	agentFields   = []string{"description", "capabilities"}
)

// CheckPlacement flags component directories placed inside .claude-plugin/
func CheckPlacement(u Unit) []string {
	var errs []string
	metaDir := filepath.Join(u.Dir, plugin.ManifestDir)
	for _, component := range misplacedComponents {
		if plugin.Exists(filepath.Join(metaDir, component)) {
			errs = append(errs, fmt.Sprintf(
				"%s: %s/ directory found in %s/ but must be at plugin root (common mistake - see official docs)",
				u.Name, component, plugin.ManifestDir))
		}
	}
	return errs
}

// CheckSkills validates skills/<name>/SKILL.md for every skill subdirectory
func CheckSkills(u Unit) []string {
	dir := filepath.Join(u.Dir, skillsDir)
	if !plugin.Exists(dir) {
		return nil
	}
	if !plugin.IsDir(dir) {
		return []string{fmt.Sprintf("%s: %s/ exists but is not a directory", u.Name, skillsDir)}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return []string{fmt.Sprintf("%s/%s/: Cannot read directory: %v", u.Name, skillsDir, err)}
	}

	var skills []string
	for _, e := range entries {
		if plugin.IsDir(filepath.Join(dir, e.Name())) {
			skills = append(skills, e.Name())
		}
	}
	if len(skills) == 0 {
		return []string{fmt.Sprintf("%s/%s/: Directory exists but contains no skill subdirectories", u.Name, skillsDir)}
	}

	var errs []string
	for _, name := range skills {
		skillMD := filepath.Join(dir, name, skillFile)
		if !plugin.Exists(skillMD) {
			errs = append(errs, fmt.Sprintf("%s/%s/%s: Missing required %s file", u.Name, skillsDir, name, skillFile))
			continue
		}
		errs = append(errs, frontmatter.Check(skillMD, u.Dir, u.Name, skillFields)...)
	}
	return errs
}

// CheckCommands validates the frontmatter of commands/*.md
func CheckCommands(u Unit) []string {
	return checkDescriptors(u, commandsDir, commandFields)
}

// CheckAgents validates the frontmatter of agents/*.md
func CheckAgents(u Unit) []string {
	return checkDescriptors(u, agentsDir, agentFields)
}

func checkDescriptors(u Unit, name string, required []string) []string {
	dir := filepath.Join(u.Dir, name)
	if !plugin.Exists(dir) {
		return nil
	}
	if !plugin.IsDir(dir) {
		return []string{fmt.Sprintf("%s: %s/ exists but is not a directory", u.Name, name)}
	}

	files, err := markdownFiles(dir)
	if err != nil {
		return []string{fmt.Sprintf("%s/%s/: Cannot read directory: %v", u.Name, name, err)}
	}
	if len(files) == 0 {
		return []string{fmt.Sprintf("%s/%s/: Directory exists but contains no .md files", u.Name, name)}
	}

	var errs []string
	for _, f := range files {
		errs = append(errs, frontmatter.Check(filepath.Join(dir, f), u.Dir, u.Name, required)...)
	}
	return errs
}

// markdownFiles lists the regular *.md files directly inside dir, sorted
func markdownFiles(dir string) ([]string, error) {
	fsys := os.DirFS(dir)
	matches, err := doublestar.Glob(fsys, "*.md")
	if err != nil {
		return nil, err
	}

	var files []string
	for _, m := range matches {
		info, err := fs.Stat(fsys, m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}

// CheckReadme requires README.md at the plugin root
func CheckReadme(u Unit) []string {
	if plugin.Exists(filepath.Join(u.Dir, plugin.ReadmeFile)) {
		return nil
	}
	return []string{fmt.Sprintf("%s: Missing %s", u.Name, plugin.ReadmeFile)}
}
