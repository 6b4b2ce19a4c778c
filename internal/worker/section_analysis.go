package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"github.com/lthibault/jitterbug/v2"
	"github.com/pkg/errors"
)

type SectionAnalysisJob struct {
	deps     Deps
	version  string
	interval time.Duration
	ticker   *jitterbug.Ticker
}

func NewSectionAnalysisJob(deps Deps) *SectionAnalysisJob {
	j := &SectionAnalysisJob{deps: deps, version: "2"}
	if deps.Config != nil {
		if deps.Config.Analysis != nil && deps.Config.Analysis.Version != "" {
			j.version = deps.Config.Analysis.Version
		}
		if deps.Config.LLM != nil {
			j.interval = deps.Config.LLM.MinInterval
		}
	}
	return j
}

func (j *SectionAnalysisJob) Kind() model.JobKind {
	return model.JobKindSectionAnalysis
}

func (j *SectionAnalysisJob) Items(ctx context.Context) ([]Item, error) {
	titles, err := j.deps.Store.Corpus().ListTitles(ctx, nil)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(titles))
	for _, t := range titles {
		names[t.Number] = t.Name
	}

	refs, err := j.deps.Store.Corpus().ListSectionRefs(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(refs))
	for _, ref := range refs {
		items = append(items, Item{
			TitleNumber:       ref.TitleNumber,
			TitleName:         names[ref.TitleNumber],
			SectionIdentifier: ref.SectionIdentifier,
			DocumentID:        ref.DocumentID,
			Description:       fmt.Sprintf("Analyzing section %s", ref.SectionIdentifier),
		})
	}
	return items, nil
}

func (j *SectionAnalysisJob) Cursor(item Item) Cursor {
	return SectionCursor{
		TitleNumber:       item.TitleNumber,
		SectionIdentifier: item.SectionIdentifier,
		DocumentID:        item.DocumentID,
	}
}

// Wait spaces LLM calls at least roughly interval apart.
func (j *SectionAnalysisJob) Wait(ctx context.Context, stop <-chan struct{}) error {
	if j.interval <= 0 {
		return nil
	}
	if j.ticker == nil {
		j.ticker = jitterbug.New(j.interval, &jitterbug.Norm{Stdev: j.interval / 10, Mean: 0})
		// the first item goes out immediately
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-stop:
		return ErrStopRequested
	case <-j.ticker.C:
		return nil
	}
}

func (j *SectionAnalysisJob) Close() error {
	if j.ticker != nil {
		j.ticker.Stop()
	}
	return nil
}

// Process scores one section. LLM failures fail the item; storage failures
// end the run.
func (j *SectionAnalysisJob) Process(ctx context.Context, item Item) error {
	doc, err := j.deps.Store.Corpus().GetDocument(ctx, item.DocumentID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return errors.Errorf("document %s disappeared", item.DocumentID)
		}
		return Fatal(errors.Wrapf(err, "failed to load document %s", item.DocumentID))
	}

	result, err := j.deps.Analyzer.AnalyzeSection(ctx, *doc)
	if err != nil {
		return errors.Wrapf(err, "analysis of section %s failed", item.SectionIdentifier)
	}

	_, err = j.deps.Store.SectionAnalysis().Upsert(ctx, model.SectionAnalysis{
		DocumentID:                    doc.ID,
		AnalysisVersion:               j.version,
		TitleNumber:                   doc.TitleNumber,
		SectionIdentifier:             doc.SectionIdentifier,
		Summary:                       result.Summary,
		AntiquatedScore:               result.AntiquatedScore,
		AntiquatedExplanation:         result.AntiquatedExplanation,
		BusinessUnfriendlyScore:       result.BusinessUnfriendlyScore,
		BusinessUnfriendlyExplanation: result.BusinessUnfriendlyExplanation,
		Metadata:                      model.AnalysisMetadata{Model: result.Model, Temperature: result.Temperature},
		AnalysisDate:                  j.deps.now(),
	})
	if err != nil {
		return Fatal(errors.Wrapf(err, "failed to store analysis of section %s", item.SectionIdentifier))
	}
	return nil
}
