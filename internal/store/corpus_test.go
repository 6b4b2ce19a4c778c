package store_test

import (
	"context"

	st "github.com/ecfr-analyzer/ecfr-analyzer/internal/store"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/storetest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("corpus store", Ordered, func() {
	var (
		s       st.Store
		cleanup func()
	)

	BeforeAll(func() {
		var err error
		s, _, _, cleanup, err = storetest.Open()
		Expect(err).To(BeNil())
	})

	AfterAll(func() {
		cleanup()
	})

	It("orders sections by title then identifier", func() {
		ctx := context.TODO()
		Expect(s.Corpus().UpsertTitle(ctx, model.Title{Number: 10, Name: "Energy"})).To(Succeed())
		Expect(s.Corpus().UpsertTitle(ctx, model.Title{Number: 2, Name: "Grants"})).To(Succeed())
		Expect(s.Corpus().UpsertTitle(ctx, model.Title{Number: 3, Name: "Reserved", Reserved: true})).To(Succeed())
		for _, d := range []model.Document{
			{ID: "c", TitleNumber: 10, SectionIdentifier: "10.2"},
			{ID: "a", TitleNumber: 2, SectionIdentifier: "2.10"},
			{ID: "b", TitleNumber: 2, SectionIdentifier: "2.1"},
		} {
			Expect(s.Corpus().UpsertDocument(ctx, d)).To(Succeed())
		}

		refs, err := s.Corpus().ListSectionRefs(ctx)
		Expect(err).To(BeNil())
		Expect(refs).To(Equal([]model.SectionRef{
			{DocumentID: "b", TitleNumber: 2, SectionIdentifier: "2.1"},
			{DocumentID: "a", TitleNumber: 2, SectionIdentifier: "2.10"},
			{DocumentID: "c", TitleNumber: 10, SectionIdentifier: "10.2"},
		}))

		titles, err := s.Corpus().ListTitles(ctx, st.NewTitleQueryFilter().WithoutReserved())
		Expect(err).To(BeNil())
		Expect(titles).To(HaveLen(2))
		Expect(titles[0].Number).To(Equal(2))
		Expect(titles[1].Number).To(Equal(10))
	})
})
