package glossary

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mesh-intelligence/glossary/pkg/types"
)

// jsonlRecord mirrors one JSONL line. Link may be null.
type jsonlRecord struct {
	Source     *string `json:"Source"`
	Category   *string `json:"Category"`
	Definition *string `json:"Definition"`
	Link       *string `json:"Link"`
}

// readJSONL parses a JSON Lines glossary. Every line must be a valid
// object carrying the required keys; a malformed line fails the load.
// Empty lines are skipped.
func readJSONL(path string) ([]types.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	header := types.RequiredColumns
	var records [][]string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var rec jsonlRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if rec.Source == nil || rec.Category == nil || rec.Definition == nil {
			return nil, fmt.Errorf("line %d: missing required keys", line)
		}
		records = append(records, []string{*rec.Source, *rec.Category, *rec.Definition, deref(rec.Link)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return buildEntries(header, records)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
