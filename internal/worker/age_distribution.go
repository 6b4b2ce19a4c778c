package worker

import (
	"context"
	"time"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/analysis"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"github.com/pkg/errors"
)

type AgeDistributionJob struct {
	deps Deps
}

func NewAgeDistributionJob(deps Deps) *AgeDistributionJob {
	return &AgeDistributionJob{deps: deps}
}

func (j *AgeDistributionJob) Kind() model.JobKind {
	return model.JobKindAgeDistribution
}

func (j *AgeDistributionJob) Items(ctx context.Context) ([]Item, error) {
	return titleItems(ctx, j.deps.Store, "Bucketing section ages")
}

func (j *AgeDistributionJob) Cursor(item Item) Cursor {
	return titleCursor(item)
}

func (j *AgeDistributionJob) Process(ctx context.Context, item Item) error {
	docs, err := j.deps.Store.Corpus().ListDocuments(ctx, item.TitleNumber)
	if err != nil {
		return Fatal(errors.Wrapf(err, "failed to list documents of title %d", item.TitleNumber))
	}

	now := j.deps.now()
	dates := make([]*time.Time, 0, len(docs))
	for _, doc := range docs {
		dates = append(dates, doc.AmendmentDate)
	}
	dist := analysis.AgeDistribution(dates, now)

	if _, err := j.deps.Store.Metric().UpsertAgeDistribution(ctx, item.TitleNumber, now, dist); err != nil {
		return Fatal(errors.Wrapf(err, "failed to store age distribution of title %d", item.TitleNumber))
	}
	return nil
}
