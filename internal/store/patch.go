package store

import (
	"encoding/json"
	"time"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
)

// Patch is a single partial update of a JobRecord. The set of variants is
// closed: every field group a JobRecord exposes has exactly one patch type.
type Patch interface {
	isPatch()
}

type StatusPatch struct {
	Status model.JobStatus
}

type ProgressPatch struct {
	Progress model.Progress
}

// CurrentItemPatch replaces the current item. A nil Item clears it.
type CurrentItemPatch struct {
	Item *model.CurrentItem
}

// ResumeDataPatch replaces the checkpoint. A nil Data clears it.
type ResumeDataPatch struct {
	Data json.RawMessage
}

// StatisticsPatch either replaces the statistics wholesale or adds the
// increments to the stored counters. AverageTimePerItem is always replaced
// when set.
type StatisticsPatch struct {
	Replace            *model.Statistics
	ItemsProcessedIncr int
	ItemsFailedIncr    int
	ItemsFailed        *int
	AverageTimePerItem *float64
}

// ErrorPatch sets the error message. A nil Message clears it.
type ErrorPatch struct {
	Message *string
}

type TimestampField int

const (
	LastStartTime TimestampField = iota
	LastStopTime
	LastCompletedTime
)

type TimestampPatch struct {
	Field TimestampField
	At    time.Time
}

// RunTimePatch adds the elapsed milliseconds to totalRunTime.
type RunTimePatch struct {
	Elapsed time.Duration
}

func (StatusPatch) isPatch()      {}
func (ProgressPatch) isPatch()    {}
func (CurrentItemPatch) isPatch() {}
func (ResumeDataPatch) isPatch()  {}
func (StatisticsPatch) isPatch()  {}
func (ErrorPatch) isPatch()       {}
func (TimestampPatch) isPatch()   {}
func (RunTimePatch) isPatch()     {}

// ApplyPatches folds patches into r in order.
func ApplyPatches(r *model.JobRecord, patches ...Patch) {
	for _, p := range patches {
		applyPatch(r, p)
	}
}

func applyPatch(r *model.JobRecord, p Patch) {
	switch v := p.(type) {
	case StatusPatch:
		r.Status = v.Status
	case ProgressPatch:
		r.Progress = v.Progress.Normalize()
	case CurrentItemPatch:
		if v.Item == nil {
			r.CurrentItem = nil
			return
		}
		item := *v.Item
		r.CurrentItem = &item
	case ResumeDataPatch:
		if len(v.Data) == 0 || string(v.Data) == "null" {
			r.ResumeData = nil
			return
		}
		r.ResumeData = append(json.RawMessage(nil), v.Data...)
	case StatisticsPatch:
		if v.Replace != nil {
			r.Statistics = *v.Replace
		}
		r.Statistics.ItemsProcessed += v.ItemsProcessedIncr
		r.Statistics.ItemsFailed += v.ItemsFailedIncr
		if v.ItemsFailed != nil {
			r.Statistics.ItemsFailed = *v.ItemsFailed
		}
		if v.AverageTimePerItem != nil {
			r.Statistics.AverageTimePerItem = *v.AverageTimePerItem
		}
	case ErrorPatch:
		if v.Message == nil {
			r.Error = nil
			return
		}
		msg := *v.Message
		r.Error = &msg
	case TimestampPatch:
		at := v.At
		switch v.Field {
		case LastStartTime:
			r.LastStartTime = &at
		case LastStopTime:
			r.LastStopTime = &at
		case LastCompletedTime:
			r.LastCompletedTime = &at
		}
	case RunTimePatch:
		if v.Elapsed > 0 {
			r.TotalRunTime += v.Elapsed.Milliseconds()
		}
	}
}

// ClearError and the helpers below build the patches used most often.
func ClearError() Patch {
	return ErrorPatch{}
}

func SetError(msg string) Patch {
	return ErrorPatch{Message: &msg}
}

func ClearResumeData() Patch {
	return ResumeDataPatch{}
}

func SetStatus(s model.JobStatus) Patch {
	return StatusPatch{Status: s}
}

func SetTimestamp(field TimestampField, at time.Time) Patch {
	return TimestampPatch{Field: field, At: at}
}

// ResetPatches zeroes progress, statistics, current item and checkpoint.
func ResetPatches() []Patch {
	return []Patch{
		ProgressPatch{},
		CurrentItemPatch{},
		ResumeDataPatch{},
		StatisticsPatch{Replace: &model.Statistics{}},
	}
}

// CompletedPatches marks a run finished: progress is pinned to total, the
// failed count replaced and the checkpoint dropped.
func CompletedPatches(at time.Time, elapsed time.Duration, total uint32, failedCount int) []Patch {
	return []Patch{
		RunTimePatch{Elapsed: elapsed},
		SetStatus(model.JobStatusCompleted),
		SetTimestamp(LastCompletedTime, at),
		ProgressPatch{Progress: model.NewProgress(total, total)},
		StatisticsPatch{ItemsFailed: &failedCount},
		ClearResumeData(),
	}
}
