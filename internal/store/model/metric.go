package model

import "time"

// AgeDistribution counts sections by the age of their last amendment.
type AgeDistribution struct {
	LessThan1Year       int `json:"lessThan1Year"`
	OneToFiveYears      int `json:"oneToFiveYears"`
	FiveToTenYears      int `json:"fiveToTenYears"`
	TenToTwentyYears    int `json:"tenToTwentyYears"`
	MoreThanTwentyYears int `json:"moreThanTwentyYears"`
}

func (a AgeDistribution) Total() int {
	return a.LessThan1Year + a.OneToFiveYears + a.FiveToTenYears + a.TenToTwentyYears + a.MoreThanTwentyYears
}

// Metric holds the per-title, per-day results of the text_metrics and
// age_distribution jobs. Each job owns a disjoint set of columns.
type Metric struct {
	ID                    uint             `gorm:"primaryKey" json:"id"`
	TitleNumber           int              `gorm:"column:title_number;uniqueIndex:idx_metrics_title_date,priority:1;not null" json:"titleNumber"`
	AnalysisDate          time.Time        `gorm:"column:analysis_date;uniqueIndex:idx_metrics_title_date,priority:2,sort:desc;not null" json:"analysisDate"`
	WordCount             int              `gorm:"column:word_count;not null;default:0" json:"wordCount"`
	SentenceCount         int              `gorm:"column:sentence_count;not null;default:0" json:"sentenceCount"`
	AverageSentenceLength float64          `gorm:"column:average_sentence_length;not null;default:0" json:"averageSentenceLength"`
	ReadabilityScore      float64          `gorm:"column:readability_score;not null;default:0" json:"readabilityScore"`
	KeywordFrequency      map[string]int   `gorm:"column:keyword_frequency;type:TEXT;serializer:json" json:"keywordFrequency,omitempty"`
	AgeDistribution       *AgeDistribution `gorm:"column:age_distribution;type:TEXT;serializer:json" json:"ageDistribution,omitempty"`
	CreatedAt             time.Time        `json:"createdAt"`
	UpdatedAt             time.Time        `json:"updatedAt"`
}

func (Metric) TableName() string {
	return "metrics"
}

// AnalysisDay truncates t to its UTC calendar day, the granularity at which
// metric rows are keyed.
func AnalysisDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
