package feedback

import (
	"strings"

	"github.com/mesh-intelligence/glossary/pkg/types"
)

// Validate checks a record before it is appended. The name is checked
// first when required, matching the order fields appear in the form.
func Validate(record types.FeedbackRecord, requireName bool) error {
	if requireName && strings.TrimSpace(record.Name) == "" {
		return types.ErrNameRequired
	}
	if strings.TrimSpace(record.Text) == "" {
		return types.ErrFeedbackEmpty
	}
	return nil
}
