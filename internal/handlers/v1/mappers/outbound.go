package mappers

import (
	api "github.com/ecfr-analyzer/ecfr-analyzer/api/v1"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/orchestrator"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
)

func ThreadStatusToApi(t orchestrator.ThreadStatus) api.ThreadStatus {
	status := api.ThreadStatus{
		JobKind: api.JobKind(t.JobKind),
		Status:  api.JobStatus(t.Status),
		Progress: api.Progress{
			Current:    int64(t.Progress.Current),
			Total:      int64(t.Progress.Total),
			Percentage: int(t.Progress.Percentage),
		},
		LastStartTime: t.LastStartTime,
		Error:         t.Error,
		Statistics: api.Statistics{
			ItemsProcessed:     t.Statistics.ItemsProcessed,
			ItemsFailed:        t.Statistics.ItemsFailed,
			AverageTimePerItem: t.Statistics.AverageTimePerItem,
		},
	}
	if t.CurrentItem != nil {
		status.CurrentItem = &api.CurrentItem{
			TitleNumber: t.CurrentItem.TitleNumber,
			TitleName:   t.CurrentItem.TitleName,
			Description: t.CurrentItem.Description,
		}
	}
	return status
}

// ThreadStatusListToApi never returns nil so the reply always carries an
// array.
func ThreadStatusListToApi(threads []orchestrator.ThreadStatus) []api.ThreadStatus {
	list := make([]api.ThreadStatus, 0, len(threads))
	for _, t := range threads {
		list = append(list, ThreadStatusToApi(t))
	}
	return list
}

func RefreshRecordToApi(r model.RefreshRecord) api.RefreshProgress {
	failed := make([]api.FailedTitle, 0, len(r.FailedTitles))
	for _, f := range r.FailedTitles {
		failed = append(failed, api.FailedTitle{
			TitleNumber: f.TitleNumber,
			Error:       f.Error,
			FailedAt:    f.FailedAt,
		})
	}
	return api.RefreshProgress{
		Id:                 int(r.ID),
		Type:               r.Type,
		Status:             api.RefreshProgressStatus(r.Status),
		TotalTitles:        r.TotalTitles,
		ProcessedTitles:    r.ProcessedTitles,
		CurrentTitle:       r.CurrentTitle,
		LastProcessedTitle: r.LastProcessedTitle,
		FailedTitles:       failed,
		StartedAt:          r.StartedAt,
		CompletedAt:        r.CompletedAt,
		LastError:          r.LastError,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func RefreshRecordListToApi(records model.RefreshRecordList) []api.RefreshProgress {
	list := make([]api.RefreshProgress, 0, len(records))
	for _, r := range records {
		list = append(list, RefreshRecordToApi(r))
	}
	return list
}
