package model

import (
	"fmt"
	"time"
)

// Title and Document are populated by the ingestion pipeline. The analysis
// workers only read them.
type Title struct {
	Number          int        `gorm:"column:number;primaryKey;autoIncrement:false" json:"number"`
	Name            string     `gorm:"column:name;type:TEXT;not null" json:"name"`
	LatestAmendedOn *time.Time `gorm:"column:latest_amended_on" json:"latestAmendedOn,omitempty"`
	LatestIssueDate *time.Time `gorm:"column:latest_issue_date" json:"latestIssueDate,omitempty"`
	UpToDateAsOf    *time.Time `gorm:"column:up_to_date_as_of" json:"upToDateAsOf,omitempty"`
	Reserved        bool       `gorm:"column:reserved;not null;default:false" json:"reserved"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (Title) TableName() string {
	return "titles"
}

type TitleList []Title

type Document struct {
	ID                string     `gorm:"column:id;primaryKey;type:VARCHAR(255)" json:"id"`
	TitleNumber       int        `gorm:"column:title_number;index:idx_documents_title_section,priority:1;not null" json:"titleNumber"`
	SectionIdentifier string     `gorm:"column:section_identifier;type:VARCHAR(255);index:idx_documents_title_section,priority:2;not null" json:"sectionIdentifier"`
	Heading           string     `gorm:"column:heading;type:TEXT" json:"heading"`
	Content           string     `gorm:"column:content;type:TEXT" json:"content"`
	AmendmentDate     *time.Time `gorm:"column:amendment_date" json:"amendmentDate,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (Document) TableName() string {
	return "documents"
}

type DocumentList []Document

// SectionRef identifies a section without its content. It is what the
// section_analysis job enumerates before loading each document lazily.
type SectionRef struct {
	DocumentID        string
	TitleNumber       int
	SectionIdentifier string
}

func (s SectionRef) String() string {
	return fmt.Sprintf("%d/%s", s.TitleNumber, s.SectionIdentifier)
}
