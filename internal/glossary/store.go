// Package glossary loads the glossary table and serves filtered views of it.
// A Store is built once per process and never modified after Load returns.
package glossary

import (
	"github.com/mesh-intelligence/glossary/internal/filter"
	"github.com/mesh-intelligence/glossary/pkg/types"
)

// Store holds an immutable glossary table.
type Store struct {
	path    string
	entries []types.Entry
	sources []string
}

var _ types.Glossary = (*Store)(nil)

// NewStore wraps already-parsed entries. The slice is copied.
func NewStore(path string, entries []types.Entry) *Store {
	cp := make([]types.Entry, len(entries))
	copy(cp, entries)
	return &Store{
		path:    path,
		entries: cp,
		sources: filter.Sources(cp),
	}
}

// Path returns the file the store was loaded from.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the table in file order.
func (s *Store) Entries() []types.Entry {
	cp := make([]types.Entry, len(s.entries))
	copy(cp, s.entries)
	return cp
}

// Sources returns the sorted distinct Source values.
func (s *Store) Sources() []string {
	cp := make([]string, len(s.sources))
	copy(cp, s.sources)
	return cp
}

// Categories returns the keyword vocabulary for the given source.
func (s *Store) Categories(source string) []string {
	return filter.AvailableCategories(s.entries, source)
}

// Filter applies the Source and keyword filters. The result never aliases
// the store's table.
func (s *Store) Filter(source, keyword string) []types.Entry {
	q := filter.Query{Source: source, Keyword: keyword}
	if q.IsZero() {
		return s.Entries()
	}
	return filter.Apply(s.entries, q)
}
