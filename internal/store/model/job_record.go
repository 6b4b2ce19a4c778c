package model

import (
	"encoding/json"
	"math"
	"time"
)

type JobKind string

const (
	JobKindTextMetrics     JobKind = "text_metrics"
	JobKindAgeDistribution JobKind = "age_distribution"
	JobKindVersionHistory  JobKind = "version_history"
	JobKindSectionAnalysis JobKind = "section_analysis"
)

// JobKinds lists every job kind in a stable order.
var JobKinds = []JobKind{
	JobKindTextMetrics,
	JobKindAgeDistribution,
	JobKindVersionHistory,
	JobKindSectionAnalysis,
}

func ParseJobKind(s string) (JobKind, bool) {
	for _, k := range JobKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

func (k JobKind) String() string {
	return string(k)
}

type JobStatus string

const (
	JobStatusStopped   JobStatus = "stopped"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

type Progress struct {
	Current    uint32 `json:"current"`
	Total      uint32 `json:"total"`
	Percentage uint8  `json:"percentage"`
}

// NewProgress clamps current to total and derives the percentage.
func NewProgress(current, total uint32) Progress {
	if current > total {
		current = total
	}
	p := Progress{Current: current, Total: total}
	if total > 0 {
		p.Percentage = uint8(math.Round(100 * float64(current) / float64(total)))
	}
	return p
}

// Normalize re-derives the percentage and enforces current <= total.
func (p Progress) Normalize() Progress {
	return NewProgress(p.Current, p.Total)
}

type CurrentItem struct {
	TitleNumber int    `json:"titleNumber"`
	TitleName   string `json:"titleName"`
	Description string `json:"description"`
}

type Statistics struct {
	ItemsProcessed     int     `json:"itemsProcessed"`
	ItemsFailed        int     `json:"itemsFailed"`
	AverageTimePerItem float64 `json:"averageTimePerItem"`
}

type JobRecord struct {
	ID                uint            `gorm:"primaryKey" json:"-"`
	JobKind           JobKind         `gorm:"column:job_kind;type:VARCHAR(64);uniqueIndex;index:idx_job_records_kind_status,priority:1;not null" json:"jobKind"`
	Status            JobStatus       `gorm:"column:status;type:VARCHAR(32);index:idx_job_records_kind_status,priority:2;not null;default:stopped" json:"status"`
	Progress          Progress        `gorm:"embedded;embeddedPrefix:progress_" json:"progress"`
	CurrentItem       *CurrentItem    `gorm:"column:current_item;type:TEXT;serializer:json" json:"currentItem,omitempty"`
	LastStartTime     *time.Time      `gorm:"column:last_start_time" json:"lastStartTime,omitempty"`
	LastStopTime      *time.Time      `gorm:"column:last_stop_time" json:"lastStopTime,omitempty"`
	LastCompletedTime *time.Time      `gorm:"column:last_completed_time" json:"lastCompletedTime,omitempty"`
	TotalRunTime      int64           `gorm:"column:total_run_time;not null;default:0" json:"totalRunTime"`
	Error             *string         `gorm:"column:error;type:TEXT" json:"error,omitempty"`
	ResumeData        json.RawMessage `gorm:"column:resume_data;type:TEXT;serializer:json" json:"resumeData,omitempty"`
	Statistics        Statistics      `gorm:"embedded;embeddedPrefix:stats_" json:"statistics"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

func (JobRecord) TableName() string {
	return "job_records"
}

// NewJobRecord returns the default record for kind: stopped, zero progress.
func NewJobRecord(kind JobKind) JobRecord {
	return JobRecord{JobKind: kind, Status: JobStatusStopped}
}

// HasResumeData reports whether a checkpoint is stored.
func (r JobRecord) HasResumeData() bool {
	return len(r.ResumeData) > 0 && string(r.ResumeData) != "null"
}
