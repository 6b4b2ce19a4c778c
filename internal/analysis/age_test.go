package analysis_test

import (
	"time"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/analysis"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("age distribution", func() {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	ago := func(years int, days int) *time.Time {
		t := now.AddDate(-years, 0, -days)
		return &t
	}

	It("buckets amendment dates by whole years", func() {
		dist := analysis.AgeDistribution([]*time.Time{
			ago(0, 10),
			ago(0, 364),
			ago(1, 0),
			ago(4, 300),
			ago(5, 0),
			ago(12, 0),
			ago(20, 0),
			ago(45, 0),
			nil,
		}, now)
		Expect(dist).To(Equal(model.AgeDistribution{
			LessThan1Year:       2,
			OneToFiveYears:      2,
			FiveToTenYears:      1,
			TenToTwentyYears:    1,
			MoreThanTwentyYears: 2,
		}))
		Expect(dist.Total()).To(Equal(8))
	})

	It("puts future dates in the newest bucket", func() {
		future := now.AddDate(1, 0, 0)
		dist := analysis.AgeDistribution([]*time.Time{&future}, now)
		Expect(dist.LessThan1Year).To(Equal(1))
	})

	It("counts anniversaries by calendar date across leap years", func() {
		date := func(y int, m time.Month, d int) time.Time {
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		}

		var dist model.AgeDistribution
		analysis.AgeBucket(&dist, date(2019, 12, 31), date(2020, 12, 30))
		Expect(dist).To(Equal(model.AgeDistribution{LessThan1Year: 1}))

		dist = model.AgeDistribution{}
		analysis.AgeBucket(&dist, date(2020, 3, 1), date(2021, 3, 1))
		Expect(dist).To(Equal(model.AgeDistribution{OneToFiveYears: 1}))

		dist = model.AgeDistribution{}
		analysis.AgeBucket(&dist, date(2020, 2, 29), date(2021, 2, 28))
		Expect(dist).To(Equal(model.AgeDistribution{LessThan1Year: 1}))
	})
})
