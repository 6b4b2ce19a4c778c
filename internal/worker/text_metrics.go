package worker

import (
	"context"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/analysis"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"github.com/pkg/errors"
)

type TextMetricsJob struct {
	deps     Deps
	keywords []string
}

func NewTextMetricsJob(deps Deps) *TextMetricsJob {
	var keywords []string
	if deps.Config != nil && deps.Config.Analysis != nil {
		keywords = deps.Config.Analysis.Keywords
	}
	return &TextMetricsJob{deps: deps, keywords: keywords}
}

func (j *TextMetricsJob) Kind() model.JobKind {
	return model.JobKindTextMetrics
}

func (j *TextMetricsJob) Items(ctx context.Context) ([]Item, error) {
	return titleItems(ctx, j.deps.Store, "Computing text metrics")
}

func (j *TextMetricsJob) Cursor(item Item) Cursor {
	return titleCursor(item)
}

func (j *TextMetricsJob) Process(ctx context.Context, item Item) error {
	docs, err := j.deps.Store.Corpus().ListDocuments(ctx, item.TitleNumber)
	if err != nil {
		return Fatal(errors.Wrapf(err, "failed to list documents of title %d", item.TitleNumber))
	}

	var total analysis.TextMetrics
	for _, doc := range docs {
		total = total.Merge(analysis.ComputeTextMetrics(doc.Content, j.keywords))
	}
	if total.KeywordFrequency == nil {
		total.KeywordFrequency = analysis.KeywordFrequency("", j.keywords)
	}

	_, err = j.deps.Store.Metric().UpsertTextMetrics(ctx, model.Metric{
		TitleNumber:           item.TitleNumber,
		AnalysisDate:          j.deps.now(),
		WordCount:             total.WordCount,
		SentenceCount:         total.SentenceCount,
		AverageSentenceLength: total.AverageSentenceLength,
		ReadabilityScore:      total.ReadabilityScore,
		KeywordFrequency:      total.KeywordFrequency,
	})
	if err != nil {
		return Fatal(errors.Wrapf(err, "failed to store text metrics of title %d", item.TitleNumber))
	}
	return nil
}
