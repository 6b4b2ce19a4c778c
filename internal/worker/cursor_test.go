package worker_test

import (
	"encoding/json"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/worker"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("cursor", func() {
	It("decodes the checkpoint format of each kind", func() {
		c, err := worker.DecodeCursor(model.JobKindVersionHistory, json.RawMessage(`{"lastTitleNumber":12}`))
		Expect(err).To(BeNil())
		Expect(c).To(Equal(worker.TitleCursor{LastTitleNumber: 12}))

		c, err = worker.DecodeCursor(model.JobKindSectionAnalysis, json.RawMessage(`{"titleNumber":3,"sectionIdentifier":"3.0007"}`))
		Expect(err).To(BeNil())
		Expect(c).To(Equal(worker.SectionCursor{TitleNumber: 3, SectionIdentifier: "3.0007"}))

		c, err = worker.DecodeCursor(model.JobKindTextMetrics, nil)
		Expect(err).To(BeNil())
		Expect(c).To(BeNil())

		_, err = worker.DecodeCursor(model.JobKindTextMetrics, json.RawMessage(`[1,2]`))
		Expect(err).ToNot(BeNil())
	})

	It("covers every item up to and including the checkpoint", func() {
		c := worker.SectionCursor{TitleNumber: 3, SectionIdentifier: "3.0007"}
		Expect(c.Covers(worker.Item{TitleNumber: 2, SectionIdentifier: "2.9999"})).To(BeTrue())
		Expect(c.Covers(worker.Item{TitleNumber: 3, SectionIdentifier: "3.0007"})).To(BeTrue())
		Expect(c.Covers(worker.Item{TitleNumber: 3, SectionIdentifier: "3.0008"})).To(BeFalse())
		Expect(c.Covers(worker.Item{TitleNumber: 4, SectionIdentifier: "4.0001"})).To(BeFalse())

		t := worker.TitleCursor{LastTitleNumber: 5}
		Expect(t.Covers(worker.Item{TitleNumber: 5})).To(BeTrue())
		Expect(t.Covers(worker.Item{TitleNumber: 6})).To(BeFalse())
	})

	It("breaks ties between documents sharing a section identifier by document id", func() {
		c := worker.SectionCursor{TitleNumber: 7, SectionIdentifier: "7.1", DocumentID: "doc-a"}
		Expect(c.Covers(worker.Item{TitleNumber: 7, SectionIdentifier: "7.1", DocumentID: "doc-a"})).To(BeTrue())
		Expect(c.Covers(worker.Item{TitleNumber: 7, SectionIdentifier: "7.1", DocumentID: "doc-b"})).To(BeFalse())
		Expect(c.Covers(worker.Item{TitleNumber: 7, SectionIdentifier: "7.0", DocumentID: "doc-z"})).To(BeTrue())
	})

	It("treats a checkpoint without a document id as covering the whole section", func() {
		c := worker.SectionCursor{TitleNumber: 7, SectionIdentifier: "7.1"}
		Expect(c.Covers(worker.Item{TitleNumber: 7, SectionIdentifier: "7.1", DocumentID: "doc-b"})).To(BeTrue())
	})
})

var _ = Describe("message", func() {
	It("turns only the present progress fields into patches", func() {
		p := model.NewProgress(1, 2)
		msg := worker.Message{Type: worker.MessageProgress, Progress: &p}
		Expect(msg.Patches()).To(Equal([]store.Patch{store.ProgressPatch{Progress: p}}))

		stats := model.Statistics{ItemsProcessed: 1}
		msg = worker.Message{
			Type:        worker.MessageProgress,
			CurrentItem: &model.CurrentItem{TitleNumber: 1},
			ResumeData:  json.RawMessage(`{"lastTitleNumber":1}`),
			Statistics:  &stats,
		}
		Expect(msg.Patches()).To(HaveLen(3))

		Expect(worker.Message{Type: worker.MessageCompleted, Total: 3}.Patches()).To(BeEmpty())
	})
})
