package model

import "time"

const (
	MinScore = 1
	MaxScore = 100
)

type AnalysisMetadata struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
}

type SectionAnalysis struct {
	ID                            uint             `gorm:"primaryKey" json:"id"`
	DocumentID                    string           `gorm:"column:document_id;type:VARCHAR(255);uniqueIndex:idx_section_analyses_doc_version,priority:1;not null" json:"documentId"`
	AnalysisVersion               string           `gorm:"column:analysis_version;type:VARCHAR(32);uniqueIndex:idx_section_analyses_doc_version,priority:2;not null" json:"analysisVersion"`
	TitleNumber                   int              `gorm:"column:title_number;index:idx_section_analyses_title_antiquated,priority:1;index:idx_section_analyses_title_unfriendly,priority:1;not null" json:"titleNumber"`
	SectionIdentifier             string           `gorm:"column:section_identifier;type:VARCHAR(255);not null" json:"sectionIdentifier"`
	Summary                       string           `gorm:"column:summary;type:TEXT" json:"summary"`
	AntiquatedScore               int              `gorm:"column:antiquated_score;index:idx_section_analyses_title_antiquated,priority:2,sort:desc;not null" json:"antiquatedScore"`
	AntiquatedExplanation         string           `gorm:"column:antiquated_explanation;type:TEXT" json:"antiquatedExplanation"`
	BusinessUnfriendlyScore       int              `gorm:"column:business_unfriendly_score;index:idx_section_analyses_title_unfriendly,priority:2,sort:desc;not null" json:"businessUnfriendlyScore"`
	BusinessUnfriendlyExplanation string           `gorm:"column:business_unfriendly_explanation;type:TEXT" json:"businessUnfriendlyExplanation"`
	Metadata                      AnalysisMetadata `gorm:"column:metadata;type:TEXT;serializer:json" json:"metadata"`
	AnalysisDate                  time.Time        `gorm:"column:analysis_date;not null" json:"analysisDate"`
	CreatedAt                     time.Time        `json:"createdAt"`
	UpdatedAt                     time.Time        `json:"updatedAt"`
}

func (SectionAnalysis) TableName() string {
	return "section_analyses"
}

type SectionAnalysisList []SectionAnalysis

// ValidScore reports whether s lies on the 1-100 scale.
func ValidScore(s int) bool {
	return s >= MinScore && s <= MaxScore
}
