package verify

// Category groups the messages produced for one plugin
type Category string

const (
	CategoryManifest  Category = "manifest"
	CategoryWarnings  Category = "warnings"
	CategoryInfo      Category = "info_only"
	CategoryPlacement Category = "placement"
	CategorySkills    Category = "skills"
	CategoryCommands  Category = "commands"
	CategoryAgents    Category = "agents"
	CategoryHooks     Category = "hooks"
	CategoryMCP       Category = "mcp"
	CategoryPaths     Category = "paths"
)

// Categories lists every category in report order
var Categories = []Category{
	CategoryManifest,
	CategoryWarnings,
	CategoryInfo,
	CategoryPlacement,
	CategorySkills,
	CategoryCommands,
	CategoryAgents,
	CategoryHooks,
	CategoryMCP,
	CategoryPaths,
}

// IsError reports whether messages in the category are hard errors.
// Everything except conflict warnings and informational notes is.
func (c Category) IsError() bool {
	return c != CategoryWarnings && c != CategoryInfo
}

// UnitResult holds the findings for one plugin, keyed by category
type UnitResult struct {
	Name   string
	Issues map[Category][]string
}

// NewUnitResult returns an empty result for the named plugin
func NewUnitResult(name string) UnitResult {
	return UnitResult{Name: name, Issues: make(map[Category][]string)}
}

// Add appends messages to a category
func (u *UnitResult) Add(c Category, msgs ...string) {
	if len(msgs) == 0 {
		return
	}
	u.Issues[c] = append(u.Issues[c], msgs...)
}

// Get returns the messages for a category
func (u UnitResult) Get(c Category) []string {
	return u.Issues[c]
}

// Errors returns every hard-error message in category order
func (u UnitResult) Errors() []string {
	var out []string
	for _, c := range Categories {
		if c.IsError() {
			out = append(out, u.Issues[c]...)
		}
	}
	return out
}

// HasErrors reports whether any hard-error category is non-empty
func (u UnitResult) HasErrors() bool {
	return len(u.Errors()) > 0
}

// Result is the outcome of one verification run
type Result struct {
	MarketplaceErrors []string
	Units             []UnitResult
}

// Unit returns the result for a plugin by name
func (r *Result) Unit(name string) (UnitResult, bool) {
	for _, u := range r.Units {
		if u.Name == name {
			return u, true
		}
	}
	return UnitResult{}, false
}

// Totals are the message counts across a run
type Totals struct {
	Errors   int
	Warnings int
	Info     int
}

// Tally counts marketplace errors and every plugin message by severity
func Tally(r *Result) Totals {
	t := Totals{Errors: len(r.MarketplaceErrors)}
	for _, u := range r.Units {
		for c, msgs := range u.Issues {
			switch c {
			case CategoryWarnings:
				t.Warnings += len(msgs)
			case CategoryInfo:
				t.Info += len(msgs)
			default:
				t.Errors += len(msgs)
			}
		}
	}
	return t
}

// ExitCode is 1 on any error, or on any warning in strict mode; otherwise 0.
// Informational messages never affect it.
func (t Totals) ExitCode(strict bool) int {
	if t.Errors > 0 || (strict && t.Warnings > 0) {
		return 1
	}
	return 0
}

// Failed reports whether the run fails under the given mode
func (t Totals) Failed(strict bool) bool {
	return t.ExitCode(strict) != 0
}
