package feedback

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/glossary/pkg/types"
)

// exportRecord is the JSONL shape of an exported record.
type exportRecord struct {
	Timestamp string `json:"timestamp"`
	Name      string `json:"name,omitempty"`
	Text      string `json:"text"`
}

// ExportJSONL writes records to path as JSON Lines using the temp-file,
// fsync, rename pattern, so readers never see a partial file.
func ExportJSONL(path string, records []types.FeedbackRecord) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	for _, rec := range records {
		line := exportRecord{
			Timestamp: rec.Timestamp.Format(types.TimestampLayout),
			Name:      rec.Name,
			Text:      rec.Text,
		}
		if err := enc.Encode(line); err != nil {
			return fail(fmt.Errorf("writing record: %w", err))
		}
	}
	if err := w.Flush(); err != nil {
		return fail(fmt.Errorf("flushing buffer: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("syncing temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
