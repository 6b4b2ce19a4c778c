package model

import "time"

// VersionEntry mirrors one element of the eCFR versioner "content_versions"
// array.
type VersionEntry struct {
	Date          string `json:"date"`
	AmendmentDate string `json:"amendment_date"`
	IssueDate     string `json:"issue_date"`
	Identifier    string `json:"identifier"`
	Name          string `json:"name"`
	Part          string `json:"part"`
	Substantive   bool   `json:"substantive"`
	Removed       bool   `json:"removed"`
	Subpart       string `json:"subpart,omitempty"`
	Title         string `json:"title"`
	Type          string `json:"type"`
}

type VersionHistory struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	TitleNumber int            `gorm:"column:title_number;uniqueIndex;not null" json:"titleNumber"`
	Versions    []VersionEntry `gorm:"column:versions;type:TEXT;serializer:json" json:"versions"`
	LastFetched time.Time      `gorm:"column:last_fetched;not null" json:"lastFetched"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (VersionHistory) TableName() string {
	return "version_histories"
}
