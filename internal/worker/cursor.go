package worker

import (
	"encoding/json"
	"fmt"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
)

// Cursor is the typed checkpoint of a job kind. It records the last item
// completed; every item at or before it is skipped on resume.
type Cursor interface {
	Covers(item Item) bool
	isCursor()
}

// TitleCursor checkpoints the per-title jobs.
type TitleCursor struct {
	LastTitleNumber int `json:"lastTitleNumber"`
}

// SectionCursor checkpoints section_analysis.
type SectionCursor struct {
	TitleNumber       int    `json:"titleNumber"`
	SectionIdentifier string `json:"sectionIdentifier"`
	DocumentID        string `json:"documentId,omitempty"`
}

func (TitleCursor) isCursor()   {}
func (SectionCursor) isCursor() {}

func (c TitleCursor) Covers(item Item) bool {
	return item.TitleNumber <= c.LastTitleNumber
}

func (c SectionCursor) Covers(item Item) bool {
	if item.TitleNumber != c.TitleNumber {
		return item.TitleNumber < c.TitleNumber
	}
	if item.SectionIdentifier != c.SectionIdentifier {
		return item.SectionIdentifier < c.SectionIdentifier
	}
	// Identifiers are not unique; ties follow the corpus order by id.
	return c.DocumentID == "" || item.DocumentID <= c.DocumentID
}

// DecodeCursor parses the stored checkpoint of kind. A nil cursor is
// returned for an empty checkpoint.
func DecodeCursor(kind model.JobKind, raw json.RawMessage) (Cursor, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	switch kind {
	case model.JobKindTextMetrics, model.JobKindAgeDistribution, model.JobKindVersionHistory:
		var c TitleCursor
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("invalid %s checkpoint: %w", kind, err)
		}
		return c, nil
	case model.JobKindSectionAnalysis:
		var c SectionCursor
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("invalid %s checkpoint: %w", kind, err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("no checkpoint format for job kind %q", kind)
	}
}

func EncodeCursor(c Cursor) json.RawMessage {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil
	}
	return data
}
