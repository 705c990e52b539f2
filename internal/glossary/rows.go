package glossary

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/glossary/pkg/types"
)

// columnIndex maps each required column to its position in a header row.
type columnIndex map[string]int

// indexHeader locates the required columns. Names match exactly after
// trimming whitespace and a leading byte order mark; extra columns are
// ignored.
func indexHeader(header []string) (columnIndex, error) {
	idx := make(columnIndex, len(types.RequiredColumns))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := idx[name]; dup {
			continue
		}
		idx[name] = i
	}

	var missing []string
	for _, col := range types.RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func (idx columnIndex) cell(record []string, col string) string {
	i := idx[col]
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// buildEntry converts one data record into an Entry. It returns ok=false
// for fully blank records and an error when a required value is blank.
func (idx columnIndex) buildEntry(row int, record []string) (types.Entry, bool, error) {
	e := types.Entry{
		Row:        row,
		Source:     idx.cell(record, types.ColumnSource),
		Category:   idx.cell(record, types.ColumnCategory),
		Definition: idx.cell(record, types.ColumnDefinition),
		Link:       idx.cell(record, types.ColumnLink),
	}
	if e.Source == "" && e.Category == "" && e.Definition == "" && e.Link == "" {
		return types.Entry{}, false, nil
	}
	if err := validateEntry(e); err != nil {
		return types.Entry{}, false, err
	}
	return e, true, nil
}

func validateEntry(e types.Entry) error {
	var blank []string
	if e.Source == "" {
		blank = append(blank, types.ColumnSource)
	}
	if e.Category == "" {
		blank = append(blank, types.ColumnCategory)
	}
	if len(blank) > 0 {
		return fmt.Errorf("row %d: blank %s", e.Row, strings.Join(blank, ", "))
	}
	return nil
}

// buildEntries converts a header plus data records into entries. Row
// numbers count data records from 1, including skipped blank ones, so they
// line up with the source file.
func buildEntries(header []string, records [][]string) ([]types.Entry, error) {
	idx, err := indexHeader(header)
	if err != nil {
		return nil, err
	}
	entries := make([]types.Entry, 0, len(records))
	for i, record := range records {
		e, ok, err := idx.buildEntry(i+1, record)
		if err != nil {
			return nil, err
		}
		if ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}
