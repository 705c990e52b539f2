// Package filter evaluates Source and keyword filters over a glossary
// table. Every function is a pure, single pass over an immutable slice.
package filter

import (
	"sort"
	"strings"

	"github.com/mesh-intelligence/glossary/pkg/types"
)

// NoneOption is the label user-facing selectors show for an unset filter.
const NoneOption = "None"

// Query holds the Source and keyword selections. An empty field is unset.
type Query struct {
	Source  string
	Keyword string
}

// NewQuery builds a Query from selector values, mapping NoneOption to unset.
func NewQuery(source, keyword string) Query {
	return Query{Source: unsetNone(source), Keyword: unsetNone(keyword)}
}

// IsZero reports whether neither filter is set.
func (q Query) IsZero() bool {
	return q.Source == "" && q.Keyword == ""
}

func unsetNone(value string) string {
	if value == NoneOption {
		return ""
	}
	return value
}

// Sources returns the sorted distinct Source values of entries.
func Sources(entries []types.Entry) []string {
	return distinctSorted(entries, func(e types.Entry) string { return e.Source })
}

// AvailableCategories returns the sorted distinct Category values of the
// entries whose Source equals source, or of all entries when source is
// empty. Sorting is byte-wise ascending, so it is case-sensitive.
func AvailableCategories(entries []types.Entry, source string) []string {
	scoped := entries
	if source != "" {
		scoped = Apply(entries, Query{Source: source})
	}
	return distinctSorted(scoped, func(e types.Entry) string { return e.Category })
}

// Apply returns the entries matching q, preserving their original order.
// A zero query returns entries unchanged. No match yields an empty,
// non-nil slice.
func Apply(entries []types.Entry, q Query) []types.Entry {
	if q.IsZero() {
		return entries
	}
	result := make([]types.Entry, 0, len(entries))
	for _, e := range entries {
		if Matches(e, q) {
			result = append(result, e)
		}
	}
	return result
}

// Matches reports whether e satisfies both parts of q. The Source part is
// an exact, case-sensitive comparison. The keyword part is a
// case-insensitive substring match against Definition, Source, and
// Category; an empty field never matches.
func Matches(e types.Entry, q Query) bool {
	if q.Source != "" && e.Source != q.Source {
		return false
	}
	if q.Keyword == "" {
		return true
	}
	keyword := strings.ToLower(q.Keyword)
	return containsFold(e.Definition, keyword) ||
		containsFold(e.Source, keyword) ||
		containsFold(e.Category, keyword)
}

// containsFold reports whether field contains the already lowercased
// keyword, ignoring case.
func containsFold(field, lowerKeyword string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(strings.ToLower(field), lowerKeyword)
}

func distinctSorted(entries []types.Entry, value func(types.Entry) string) []string {
	seen := make(map[string]bool)
	values := make([]string, 0)
	for _, e := range entries {
		v := value(e)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
