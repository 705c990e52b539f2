package feedback

import (
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/glossary/internal/sqlite"
	"github.com/mesh-intelligence/glossary/pkg/types"
)

// Open returns the log selected by cfg. Relative file paths resolve
// against dataDir.
func Open(cfg types.FeedbackConfig, dataDir string) (types.FeedbackLog, error) {
	switch cfg.Backend {
	case "", types.FeedbackBackendCSV:
		file := cfg.File
		if file == "" {
			file = types.DefaultFeedbackFile
		}
		if !filepath.IsAbs(file) {
			file = filepath.Join(dataDir, file)
		}
		return NewCSVLog(file, cfg.RequireName), nil
	case types.FeedbackBackendSQLite:
		log, err := sqlite.Open(dataDir)
		if err != nil {
			return nil, err
		}
		return log, nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrFeedbackBackendUnknown, cfg.Backend)
	}
}
