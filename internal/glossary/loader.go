package glossary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/glossary/pkg/types"
)

// Load reads the glossary described by cfg. Format comes from cfg.Format,
// or from the file extension when it is empty. Any failure wraps
// types.ErrDataUnavailable; no partial table is returned.
func Load(cfg types.GlossaryConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = types.DefaultGlossaryPath
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrDataUnavailable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", types.ErrDataUnavailable, path)
	}

	format := cfg.Format
	if format == "" {
		format = formatFromExt(path)
	}

	var entries []types.Entry
	switch format {
	case types.FormatCSV:
		delimiter := cfg.Delimiter
		if delimiter == "" {
			delimiter = types.DefaultDelimiter
		}
		entries, err = readCSV(path, []rune(delimiter)[0])
	case types.FormatXLSX:
		sheet := cfg.Sheet
		if sheet == "" {
			sheet = types.DefaultSheet
		}
		entries, err = readXLSX(path, sheet)
	case types.FormatJSONL:
		entries, err = readJSONL(path)
	default:
		return nil, fmt.Errorf("%w: %s: %v", types.ErrDataUnavailable, path, types.ErrFormatUnknown)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrDataUnavailable, path, err)
	}

	return NewStore(path, entries), nil
}

// formatFromExt maps a file extension to a format. Unknown extensions fall
// back to CSV, the original source format.
func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return types.FormatXLSX
	case ".jsonl", ".ndjson":
		return types.FormatJSONL
	default:
		return types.FormatCSV
	}
}
