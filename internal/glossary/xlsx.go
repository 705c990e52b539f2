package glossary

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mesh-intelligence/glossary/pkg/types"
)

// readXLSX parses the named sheet of a spreadsheet workbook. The first row
// is the header.
func readXLSX(path, sheet string) ([]types.Entry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}
	return buildEntries(rows[0], rows[1:])
}
