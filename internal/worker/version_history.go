package worker

import (
	"context"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/archive"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type VersionHistoryJob struct {
	deps Deps
}

func NewVersionHistoryJob(deps Deps) *VersionHistoryJob {
	if deps.Archive == nil {
		deps.Archive = archive.Noop{}
	}
	return &VersionHistoryJob{deps: deps}
}

func (j *VersionHistoryJob) Kind() model.JobKind {
	return model.JobKindVersionHistory
}

func (j *VersionHistoryJob) Items(ctx context.Context) ([]Item, error) {
	return titleItems(ctx, j.deps.Store, "Fetching version history")
}

func (j *VersionHistoryJob) Cursor(item Item) Cursor {
	return titleCursor(item)
}

// Process fetches the title's versions. An unreachable eCFR API fails only
// this title.
func (j *VersionHistoryJob) Process(ctx context.Context, item Item) error {
	entries, raw, err := j.deps.Versions.Versions(ctx, item.TitleNumber)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []model.VersionEntry{}
	}

	_, err = j.deps.Store.VersionHistory().Upsert(ctx, model.VersionHistory{
		TitleNumber: item.TitleNumber,
		Versions:    entries,
		LastFetched: j.deps.now(),
	})
	if err != nil {
		return Fatal(errors.Wrapf(err, "failed to store version history of title %d", item.TitleNumber))
	}

	if err := j.deps.Archive.Put(ctx, archive.VersionsKey(item.TitleNumber), raw); err != nil {
		zap.S().Named("worker").Warnw("failed to archive versions payload", "title", item.TitleNumber, "archive", j.deps.Archive.Type(), "error", err)
	}
	return nil
}
