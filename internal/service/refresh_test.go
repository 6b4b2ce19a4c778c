package service_test

import (
	"context"
	"errors"
	"time"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/service"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/storetest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("refresh service", Ordered, func() {
	var (
		s       store.Store
		gormdb  *gorm.DB
		cleanup func()
		srv     *service.RefreshService
		base    = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	)

	BeforeAll(func() {
		var err error
		s, gormdb, _, cleanup, err = storetest.Open()
		Expect(err).To(BeNil())
		srv = service.NewRefreshService(s)
	})

	AfterAll(func() {
		cleanup()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM refresh_records;")
	})

	create := func(refreshType string, startedAt time.Time, failed ...int) *model.RefreshRecord {
		r := model.RefreshRecord{
			Type:         refreshType,
			Status:       model.RefreshStatusCompleted,
			TotalTitles:  50,
			StartedAt:    startedAt,
			FailedTitles: []model.FailedTitle{},
		}
		for _, t := range failed {
			r.FailedTitles = append(r.FailedTitles, model.FailedTitle{TitleNumber: t, Error: "timeout", FailedAt: startedAt})
		}
		if len(failed) > 0 {
			r.Status = model.RefreshStatusFailed
			msg := "some titles failed"
			r.LastError = &msg
		}
		created, err := s.Refresh().Create(context.TODO(), r)
		Expect(err).To(BeNil())
		return created
	}

	Context("progress", func() {
		It("returns the latest record of the type", func() {
			create("titles", base)
			latest := create("titles", base.Add(time.Hour))
			create("search_index", base.Add(2*time.Hour))

			r, err := srv.Progress(context.TODO(), "titles")
			Expect(err).To(BeNil())
			Expect(r.ID).To(Equal(latest.ID))
		})

		It("uses the titles type by default", func() {
			latest := create("titles", base)
			r, err := srv.Progress(context.TODO(), "")
			Expect(err).To(BeNil())
			Expect(r.ID).To(Equal(latest.ID))
		})

		It("reports a type without records as not found", func() {
			_, err := srv.Progress(context.TODO(), "titles")
			var notFound *service.ErrResourceNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())
		})
	})

	Context("history", func() {
		It("returns records newest first within the limit", func() {
			for i := 0; i < 15; i++ {
				create("titles", base.Add(time.Duration(i)*time.Hour))
			}

			records, err := srv.History(context.TODO(), "titles", 0)
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(service.DefaultHistoryLimit))
			Expect(records[0].StartedAt).To(BeTemporally("==", base.Add(14*time.Hour)))

			records, err = srv.History(context.TODO(), "titles", 3)
			Expect(err).To(BeNil())
			Expect(records).To(HaveLen(3))
		})

		It("clamps the limit", func() {
			Expect(service.ClampHistoryLimit(-1)).To(Equal(service.DefaultHistoryLimit))
			Expect(service.ClampHistoryLimit(0)).To(Equal(service.DefaultHistoryLimit))
			Expect(service.ClampHistoryLimit(25)).To(Equal(25))
			Expect(service.ClampHistoryLimit(1000)).To(Equal(service.MaxHistoryLimit))
		})
	})

	Context("retry failed", func() {
		It("empties the failed titles and puts the record back in progress", func() {
			r := create("titles", base, 3, 7)

			updated, err := srv.RetryFailed(context.TODO(), r.ID)
			Expect(err).To(BeNil())
			Expect(updated.FailedTitles).To(BeEmpty())
			Expect(updated.Status).To(Equal(model.RefreshStatusInProgress))
			Expect(updated.LastError).To(BeNil())

			stored, err := s.Refresh().Get(context.TODO(), r.ID)
			Expect(err).To(BeNil())
			Expect(stored.FailedTitles).To(BeEmpty())
			Expect(stored.Status).To(Equal(model.RefreshStatusInProgress))
		})

		It("reports an unknown record as not found", func() {
			_, err := srv.RetryFailed(context.TODO(), 4242)
			var notFound *service.ErrResourceNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())
		})
	})
})
