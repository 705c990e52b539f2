package glossary

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mesh-intelligence/glossary/pkg/types"
)

// readCSV parses a delimited glossary file. Rows may have fewer fields than
// the header; missing trailing cells read as blank.
func readCSV(path string, delimiter rune) ([]types.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}
	return buildEntries(header, records)
}
