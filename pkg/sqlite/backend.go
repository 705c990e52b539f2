// Package sqlite exposes the SQLite feedback log to programs that embed
// the glossary packages, keeping the implementation internal.
package sqlite

import (
	"github.com/mesh-intelligence/glossary/internal/sqlite"
	"github.com/mesh-intelligence/glossary/pkg/types"
)

// DatabaseFile is the database file name created in the data directory.
const DatabaseFile = sqlite.DatabaseFile

// OpenFeedbackLog opens (creating if needed) the feedback database in
// dataDir. Append rejects records with blank text with
// types.ErrFeedbackEmpty.
//
// Example:
//
//	log, err := sqlite.OpenFeedbackLog(".glossary-data")
//	if err != nil {
//	    return err
//	}
//	defer log.Close()
//	err = log.Append(types.FeedbackRecord{Timestamp: time.Now(), Text: "Great"})
func OpenFeedbackLog(dataDir string) (types.FeedbackLog, error) {
	log, err := sqlite.Open(dataDir)
	if err != nil {
		return nil, err
	}
	return log, nil
}
