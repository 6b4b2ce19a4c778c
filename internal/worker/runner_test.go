package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/config"
	st "github.com/ecfr-analyzer/ecfr-analyzer/internal/store"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/storetest"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/worker"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("runner", Ordered, func() {
	var (
		s       st.Store
		gormdb  *gorm.DB
		cfg     *config.Config
		cleanup func()
	)

	BeforeAll(func() {
		var err error
		s, gormdb, cfg, cleanup, err = storetest.Open()
		Expect(err).To(BeNil())
		cfg.LLM.MinInterval = 0
	})

	AfterAll(func() {
		cleanup()
	})

	AfterEach(func() {
		for _, table := range []string{"job_records", "section_analyses", "metrics", "version_histories", "documents", "titles"} {
			gormdb.Exec("DELETE FROM " + table + ";")
		}
	})

	deps := func(analyzer *fakeAnalyzer) worker.Deps {
		d := worker.Deps{
			Config:   cfg,
			Store:    s,
			Versions: &fakeVersions{},
			Now:      func() time.Time { return fixedNow },
		}
		if analyzer != nil {
			d.Analyzer = analyzer
		}
		return d
	}

	Context("text_metrics", func() {
		It("processes every title and completes", func() {
			Expect(storetest.SeedCorpus(context.TODO(), s, 3, 2)).To(Succeed())
			_, err := s.Progress().Ensure(context.TODO(), model.JobKindTextMetrics)
			Expect(err).To(BeNil())

			job, err := worker.NewJob(model.JobKindTextMetrics, deps(nil))
			Expect(err).To(BeNil())
			ch, out := newOutput()
			code := worker.NewRunner(job, s.Progress(), ch).Run(context.TODO(), false)
			Expect(code).To(Equal(worker.ExitOK))

			msgs := decodeMessages(out)
			Expect(msgs).To(HaveLen(5))
			Expect(*msgs[0].Progress).To(Equal(model.Progress{Current: 0, Total: 3}))
			for i := 1; i <= 3; i++ {
				Expect(msgs[i].Type).To(Equal(worker.MessageProgress))
				Expect(msgs[i].Progress.Current).To(Equal(uint32(i)))
				Expect(msgs[i].CurrentItem.TitleNumber).To(Equal(i))
				Expect(string(msgs[i].ResumeData)).To(MatchJSON(`{"lastTitleNumber":` + string(rune('0'+i)) + `}`))
				Expect(msgs[i].Statistics.ItemsProcessed).To(Equal(i))
			}
			Expect(msgs[3].Progress.Percentage).To(Equal(uint8(100)))
			Expect(msgs[4]).To(Equal(worker.Message{Type: worker.MessageCompleted, Total: 3}))

			for t := 1; t <= 3; t++ {
				m, err := s.Metric().Get(context.TODO(), t, fixedNow)
				Expect(err).To(BeNil())
				Expect(m.WordCount).To(Equal(2 * 15))
				Expect(m.SentenceCount).To(Equal(4))
				Expect(m.KeywordFrequency).To(HaveKeyWithValue("shall", 2))
				Expect(m.KeywordFrequency).To(HaveKeyWithValue("must", 2))
			}
		})

		It("is idempotent when a title is processed twice", func() {
			Expect(storetest.SeedCorpus(context.TODO(), s, 2, 1)).To(Succeed())
			for i := 0; i < 2; i++ {
				job, err := worker.NewJob(model.JobKindTextMetrics, deps(nil))
				Expect(err).To(BeNil())
				ch, _ := newOutput()
				Expect(worker.NewRunner(job, s.Progress(), ch).Run(context.TODO(), true)).To(Equal(worker.ExitOK))
			}
			var count int
			Expect(gormdb.Raw("SELECT COUNT(*) FROM metrics;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(2))
		})
	})

	Context("age_distribution", func() {
		It("stores a distribution per title", func() {
			ctx := context.TODO()
			Expect(s.Corpus().UpsertTitle(ctx, model.Title{Number: 1, Name: "General"})).To(Succeed())
			recent := fixedNow.AddDate(0, -2, 0)
			old := fixedNow.AddDate(-30, 0, 0)
			Expect(s.Corpus().UpsertDocument(ctx, model.Document{ID: "a", TitleNumber: 1, SectionIdentifier: "1.1", AmendmentDate: &recent})).To(Succeed())
			Expect(s.Corpus().UpsertDocument(ctx, model.Document{ID: "b", TitleNumber: 1, SectionIdentifier: "1.2", AmendmentDate: &old})).To(Succeed())
			Expect(s.Corpus().UpsertDocument(ctx, model.Document{ID: "c", TitleNumber: 1, SectionIdentifier: "1.3"})).To(Succeed())

			job, err := worker.NewJob(model.JobKindAgeDistribution, deps(nil))
			Expect(err).To(BeNil())
			ch, _ := newOutput()
			Expect(worker.NewRunner(job, s.Progress(), ch).Run(ctx, true)).To(Equal(worker.ExitOK))

			m, err := s.Metric().Get(ctx, 1, fixedNow)
			Expect(err).To(BeNil())
			Expect(m.AgeDistribution).ToNot(BeNil())
			Expect(*m.AgeDistribution).To(Equal(model.AgeDistribution{LessThan1Year: 1, MoreThanTwentyYears: 1}))
		})
	})

	Context("version_history", func() {
		It("fails only the unreachable title", func() {
			Expect(storetest.SeedCorpus(context.TODO(), s, 3, 1)).To(Succeed())
			archive := &recordingArchive{}
			d := deps(nil)
			d.Versions = &fakeVersions{failTitle: 2}
			d.Archive = archive

			job, err := worker.NewJob(model.JobKindVersionHistory, d)
			Expect(err).To(BeNil())
			ch, out := newOutput()
			Expect(worker.NewRunner(job, s.Progress(), ch).Run(context.TODO(), true)).To(Equal(worker.ExitOK))

			msgs := decodeMessages(out)
			last := msgs[len(msgs)-1]
			Expect(last.Type).To(Equal(worker.MessageCompleted))
			Expect(last.FailedCount).To(Equal(1))

			h, err := s.VersionHistory().Get(context.TODO(), 1)
			Expect(err).To(BeNil())
			Expect(h.Versions).To(HaveLen(1))
			_, err = s.VersionHistory().Get(context.TODO(), 2)
			Expect(err).To(MatchError(st.ErrRecordNotFound))
			Expect(archive.keys).To(Equal([]string{"versions/title-1.json", "versions/title-3.json"}))
		})
	})

	Context("section_analysis", func() {
		It("counts per-item LLM failures and keeps going", func() {
			Expect(storetest.SeedCorpus(context.TODO(), s, 4, 5)).To(Succeed())
			analyzer := &fakeAnalyzer{failEvery: 5}

			job, err := worker.NewJob(model.JobKindSectionAnalysis, deps(analyzer))
			Expect(err).To(BeNil())
			ch, out := newOutput()
			Expect(worker.NewRunner(job, s.Progress(), ch).Run(context.TODO(), true)).To(Equal(worker.ExitOK))

			msgs := decodeMessages(out)
			last := msgs[len(msgs)-1]
			Expect(last).To(Equal(worker.Message{Type: worker.MessageCompleted, Total: 20, FailedCount: 4}))

			progress := progressMessages(msgs)
			final := progress[len(progress)-1]
			Expect(final.Statistics.ItemsProcessed).To(Equal(20))
			Expect(final.Statistics.ItemsFailed).To(Equal(4))
			Expect(final.Statistics.AverageTimePerItem).To(BeNumerically(">=", 0))

			count, err := s.SectionAnalysis().Count(context.TODO(), nil)
			Expect(err).To(BeNil())
			Expect(count).To(Equal(int64(16)))
		})

		It("stops at an item boundary and resumes from the checkpoint", func() {
			ctx := context.TODO()
			Expect(storetest.SeedCorpus(ctx, s, 4, 25)).To(Succeed())
			_, err := s.Progress().Ensure(ctx, model.JobKindSectionAnalysis)
			Expect(err).To(BeNil())

			var runner *worker.Runner
			analyzer := &fakeAnalyzer{onCall: func(n int) {
				if n == 30 {
					runner.RequestStop()
				}
			}}
			job, err := worker.NewJob(model.JobKindSectionAnalysis, deps(analyzer))
			Expect(err).To(BeNil())
			ch, out := newOutput()
			runner = worker.NewRunner(job, s.Progress(), ch)
			Expect(runner.Run(ctx, false)).To(Equal(worker.ExitOK))

			msgs := decodeMessages(out)
			last := msgs[len(msgs)-1]
			Expect(last.Type).To(Equal(worker.MessageProgress))
			Expect(*last.Progress).To(Equal(model.NewProgress(30, 100)))
			cursor, err := worker.DecodeCursor(model.JobKindSectionAnalysis, last.ResumeData)
			Expect(err).To(BeNil())
			Expect(cursor).To(Equal(worker.SectionCursor{
				TitleNumber:       2,
				SectionIdentifier: storetest.SectionIdentifier(2, 5),
				DocumentID:        storetest.DocumentID(2, 5),
			}))
			Expect(analyzer.Calls()).To(Equal(30))

			// what the orchestrator persists from the stream
			for _, m := range progressMessages(msgs) {
				_, err := s.Progress().Apply(ctx, model.JobKindSectionAnalysis, m.Patches()...)
				Expect(err).To(BeNil())
			}

			resumed := &fakeAnalyzer{}
			job, err = worker.NewJob(model.JobKindSectionAnalysis, deps(resumed))
			Expect(err).To(BeNil())
			ch, out = newOutput()
			Expect(worker.NewRunner(job, s.Progress(), ch).Run(ctx, false)).To(Equal(worker.ExitOK))

			msgs = decodeMessages(out)
			Expect(*msgs[0].Progress).To(Equal(model.NewProgress(30, 100)))
			Expect(msgs[0].Statistics.ItemsProcessed).To(Equal(30))
			Expect(msgs[1].CurrentItem.Description).To(ContainSubstring(storetest.SectionIdentifier(2, 6)))
			Expect(msgs[len(msgs)-1]).To(Equal(worker.Message{Type: worker.MessageCompleted, Total: 100}))
			Expect(resumed.Calls()).To(Equal(70))
			final := progressMessages(msgs)
			Expect(final[len(final)-1].Statistics.ItemsProcessed).To(Equal(100))

			count, err := s.SectionAnalysis().Count(ctx, nil)
			Expect(err).To(BeNil())
			Expect(count).To(Equal(int64(100)))
		})

		It("resumes with the next document sharing the checkpointed section identifier", func() {
			ctx := context.TODO()
			Expect(s.Corpus().UpsertTitle(ctx, model.Title{Number: 7, Name: storetest.TitleName(7)})).To(Succeed())
			for _, id := range []string{"doc-b", "doc-a"} {
				Expect(s.Corpus().UpsertDocument(ctx, model.Document{
					ID:                id,
					TitleNumber:       7,
					SectionIdentifier: "7.1",
					Content:           "The agency shall publish the notice.",
				})).To(Succeed())
			}
			_, err := s.Progress().Ensure(ctx, model.JobKindSectionAnalysis)
			Expect(err).To(BeNil())

			var runner *worker.Runner
			analyzer := &fakeAnalyzer{onCall: func(n int) {
				if n == 1 {
					runner.RequestStop()
				}
			}}
			job, err := worker.NewJob(model.JobKindSectionAnalysis, deps(analyzer))
			Expect(err).To(BeNil())
			ch, out := newOutput()
			runner = worker.NewRunner(job, s.Progress(), ch)
			Expect(runner.Run(ctx, false)).To(Equal(worker.ExitOK))

			msgs := decodeMessages(out)
			last := msgs[len(msgs)-1]
			Expect(*last.Progress).To(Equal(model.NewProgress(1, 2)))
			cursor, err := worker.DecodeCursor(model.JobKindSectionAnalysis, last.ResumeData)
			Expect(err).To(BeNil())
			Expect(cursor).To(Equal(worker.SectionCursor{TitleNumber: 7, SectionIdentifier: "7.1", DocumentID: "doc-a"}))
			for _, m := range progressMessages(msgs) {
				_, err := s.Progress().Apply(ctx, model.JobKindSectionAnalysis, m.Patches()...)
				Expect(err).To(BeNil())
			}

			resumed := &fakeAnalyzer{}
			job, err = worker.NewJob(model.JobKindSectionAnalysis, deps(resumed))
			Expect(err).To(BeNil())
			ch, out = newOutput()
			Expect(worker.NewRunner(job, s.Progress(), ch).Run(ctx, false)).To(Equal(worker.ExitOK))

			msgs = decodeMessages(out)
			Expect(msgs[len(msgs)-1]).To(Equal(worker.Message{Type: worker.MessageCompleted, Total: 2}))
			Expect(resumed.Calls()).To(Equal(1))

			count, err := s.SectionAnalysis().Count(ctx, nil)
			Expect(err).To(BeNil())
			Expect(count).To(Equal(int64(2)))
		})

		It("ignores the checkpoint on restart", func() {
			ctx := context.TODO()
			Expect(storetest.SeedCorpus(ctx, s, 1, 5)).To(Succeed())
			_, err := s.Progress().Ensure(ctx, model.JobKindSectionAnalysis)
			Expect(err).To(BeNil())
			_, err = s.Progress().Apply(ctx, model.JobKindSectionAnalysis,
				st.ResumeDataPatch{Data: json.RawMessage(`{"titleNumber":1,"sectionIdentifier":"1.0003"}`)})
			Expect(err).To(BeNil())

			analyzer := &fakeAnalyzer{}
			job, err := worker.NewJob(model.JobKindSectionAnalysis, deps(analyzer))
			Expect(err).To(BeNil())
			ch, out := newOutput()
			Expect(worker.NewRunner(job, s.Progress(), ch).Run(ctx, true)).To(Equal(worker.ExitOK))

			msgs := decodeMessages(out)
			Expect(msgs[0].Progress.Current).To(BeZero())
			Expect(msgs[0].ResumeData).To(BeEmpty())
			Expect(analyzer.Calls()).To(Equal(5))
		})
	})

	Context("failures", func() {
		It("reports a fatal error and exits non-zero", func() {
			job := &scriptedJob{n: 5, process: func(item worker.Item) error {
				if item.TitleNumber == 3 {
					return worker.Fatal(errors.New("database is gone"))
				}
				return nil
			}}
			ch, out := newOutput()
			Expect(worker.NewRunner(job, s.Progress(), ch).Run(context.TODO(), true)).To(Equal(worker.ExitFatal))

			msgs := decodeMessages(out)
			last := msgs[len(msgs)-1]
			Expect(last.Type).To(Equal(worker.MessageError))
			Expect(last.Error).To(ContainSubstring("database is gone"))
			prev := msgs[len(msgs)-2]
			Expect(string(prev.ResumeData)).To(MatchJSON(`{"lastTitleNumber":2}`))
		})

		It("turns a panic into an error message", func() {
			job := &scriptedJob{n: 2, process: func(item worker.Item) error {
				panic("unexpected")
			}}
			ch, out := newOutput()
			Expect(worker.NewRunner(job, s.Progress(), ch).Run(context.TODO(), true)).To(Equal(worker.ExitFatal))

			msgs := decodeMessages(out)
			Expect(msgs[len(msgs)-1].Type).To(Equal(worker.MessageError))
			Expect(msgs[len(msgs)-1].Error).To(ContainSubstring("unexpected"))
		})

		It("completes an empty work set", func() {
			job := &scriptedJob{n: 0}
			ch, out := newOutput()
			Expect(worker.NewRunner(job, s.Progress(), ch).Run(context.TODO(), true)).To(Equal(worker.ExitOK))
			msgs := decodeMessages(out)
			Expect(msgs).To(HaveLen(2))
			Expect(msgs[1]).To(Equal(worker.Message{Type: worker.MessageCompleted}))
		})
	})
})
