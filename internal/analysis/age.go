package analysis

import (
	"time"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
)

// AgeBucket adds one section amended at amended into dist, relative to now.
// Ages are measured in whole calendar years.
func AgeBucket(dist *model.AgeDistribution, amended, now time.Time) {
	years := yearsBetween(amended, now)
	switch {
	case years < 1:
		dist.LessThan1Year++
	case years < 5:
		dist.OneToFiveYears++
	case years < 10:
		dist.FiveToTenYears++
	case years < 20:
		dist.TenToTwentyYears++
	default:
		dist.MoreThanTwentyYears++
	}
}

// AgeDistribution buckets every non-nil amendment date.
func AgeDistribution(dates []*time.Time, now time.Time) model.AgeDistribution {
	var dist model.AgeDistribution
	for _, d := range dates {
		if d == nil {
			continue
		}
		AgeBucket(&dist, *d, now)
	}
	return dist
}

func yearsBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	years := to.Year() - from.Year()
	if to.Month() < from.Month() || (to.Month() == from.Month() && to.Day() < from.Day()) {
		years--
	}
	return years
}
