package model

import "time"

type RefreshStatus string

const (
	RefreshStatusInProgress RefreshStatus = "in_progress"
	RefreshStatusCompleted  RefreshStatus = "completed"
	RefreshStatusFailed     RefreshStatus = "failed"
)

// FailedTitle records a title the ingestion pipeline could not refresh.
type FailedTitle struct {
	TitleNumber int       `json:"titleNumber"`
	Error       string    `json:"error"`
	FailedAt    time.Time `json:"failedAt"`
}

// RefreshRecord is written by the ingestion pipeline; this service only reads
// it and resets failed titles for retry.
type RefreshRecord struct {
	ID                 uint          `gorm:"primaryKey" json:"id"`
	Type               string        `gorm:"column:type;type:VARCHAR(64);index:idx_refresh_records_type_started,priority:1;not null" json:"type"`
	Status             RefreshStatus `gorm:"column:status;type:VARCHAR(32);not null" json:"status"`
	TotalTitles        int           `gorm:"column:total_titles;not null;default:0" json:"totalTitles"`
	ProcessedTitles    int           `gorm:"column:processed_titles;not null;default:0" json:"processedTitles"`
	CurrentTitle       *int          `gorm:"column:current_title" json:"currentTitle,omitempty"`
	LastProcessedTitle *int          `gorm:"column:last_processed_title" json:"lastProcessedTitle,omitempty"`
	FailedTitles       []FailedTitle `gorm:"column:failed_titles;type:TEXT;serializer:json" json:"failedTitles"`
	StartedAt          time.Time     `gorm:"column:started_at;index:idx_refresh_records_type_started,priority:2,sort:desc" json:"startedAt"`
	CompletedAt        *time.Time    `gorm:"column:completed_at" json:"completedAt,omitempty"`
	LastError          *string       `gorm:"column:last_error;type:TEXT" json:"lastError,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

func (RefreshRecord) TableName() string {
	return "refresh_records"
}

type RefreshRecordList []RefreshRecord
