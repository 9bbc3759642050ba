package search

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Candidates wraps a list of known names for fuzzy searching
type Candidates []string

// String returns the searchable string for a candidate
func (c Candidates) String(i int) string {
	return strings.ToLower(c[i])
}

// Len returns the number of candidates
func (c Candidates) Len() int {
	return len(c)
}

// Suggest returns the known name closest to query, if any is close enough.
// Fuzzy subsequence matches win; a case-insensitive substring match is the fallback.
func Suggest(query string, known []string) (string, bool) {
	if query == "" || len(known) == 0 {
		return "", false
	}
	candidates := Candidates(sorted(known))
	query = strings.ToLower(query)

	if matches := fuzzy.FindFrom(query, candidates); len(matches) > 0 {
		return candidates[matches[0].Index], true
	}

	for _, name := range candidates {
		if matchesQuery(strings.ToLower(name), query) {
			return name, true
		}
	}
	return "", false
}

// matchesQuery checks whether one name contains the other
func matchesQuery(name, query string) bool {
	return strings.Contains(name, query) || strings.Contains(query, name)
}

func sorted(names []string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out
}
