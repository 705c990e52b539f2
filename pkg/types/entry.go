package types

// Column names required in every glossary source.
const (
	ColumnSource     = "Source"
	ColumnCategory   = "Category"
	ColumnDefinition = "Definition"
	ColumnLink       = "Link"
)

// RequiredColumns lists the header names a glossary source must carry,
// in canonical order.
var RequiredColumns = []string{
	ColumnSource,
	ColumnCategory,
	ColumnDefinition,
	ColumnLink,
}

// Entry is one row of the glossary table.
type Entry struct {
	Row        int    `json:"row"`            // 1-based data row in the source file.
	Source     string `json:"source"`         // Originating organization or document.
	Category   string `json:"category"`       // Short topical label.
	Definition string `json:"definition"`     // Definition text.
	Link       string `json:"link,omitempty"` // Optional reference URL; empty means none.
}

// HasLink reports whether the entry carries a reference link.
func (e Entry) HasLink() bool {
	return e.Link != ""
}

// Glossary provides read access to a loaded glossary table. A Glossary is
// immutable after load and safe for concurrent readers.
type Glossary interface {
	// Entries returns every entry in file order.
	Entries() []Entry

	// Sources returns the sorted distinct Source values.
	Sources() []string

	// Categories returns the sorted distinct Category values of entries
	// whose Source equals source, or of all entries when source is empty.
	Categories(source string) []string

	// Filter returns the entries matching source and keyword, in file
	// order. Empty arguments are unset.
	Filter(source, keyword string) []Entry
}
