package store

import (
	"context"
	"errors"
	"time"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Metric interface {
	// UpsertTextMetrics writes the text statistics columns of the row for
	// (titleNumber, day of analysisDate), leaving other columns untouched.
	UpsertTextMetrics(ctx context.Context, metric model.Metric) (*model.Metric, error)
	// UpsertAgeDistribution writes only the age distribution column.
	UpsertAgeDistribution(ctx context.Context, titleNumber int, analysisDate time.Time, dist model.AgeDistribution) (*model.Metric, error)
	Get(ctx context.Context, titleNumber int, analysisDate time.Time) (*model.Metric, error)
	Latest(ctx context.Context, titleNumber int) (*model.Metric, error)
}

type MetricStore struct {
	db *gorm.DB
}

// Make sure we conform to Metric interface
var _ Metric = (*MetricStore)(nil)

func NewMetricStore(db *gorm.DB) Metric {
	return &MetricStore{db: db}
}

func (m *MetricStore) UpsertTextMetrics(ctx context.Context, metric model.Metric) (*model.Metric, error) {
	metric.ID = 0
	metric.AnalysisDate = model.AnalysisDay(metric.AnalysisDate)
	metric.AgeDistribution = nil
	result := m.getDB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "title_number"}, {Name: "analysis_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"word_count",
			"sentence_count",
			"average_sentence_length",
			"readability_score",
			"keyword_frequency",
			"updated_at",
		}),
	}).Create(&metric)
	if result.Error != nil {
		return nil, result.Error
	}
	return m.Get(ctx, metric.TitleNumber, metric.AnalysisDate)
}

func (m *MetricStore) UpsertAgeDistribution(ctx context.Context, titleNumber int, analysisDate time.Time, dist model.AgeDistribution) (*model.Metric, error) {
	metric := model.Metric{
		TitleNumber:     titleNumber,
		AnalysisDate:    model.AnalysisDay(analysisDate),
		AgeDistribution: &dist,
	}
	result := m.getDB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "title_number"}, {Name: "analysis_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"age_distribution", "updated_at"}),
	}).Create(&metric)
	if result.Error != nil {
		return nil, result.Error
	}
	return m.Get(ctx, titleNumber, metric.AnalysisDate)
}

func (m *MetricStore) Get(ctx context.Context, titleNumber int, analysisDate time.Time) (*model.Metric, error) {
	var metric model.Metric
	result := m.getDB(ctx).
		Where("title_number = ? AND analysis_date = ?", titleNumber, model.AnalysisDay(analysisDate)).
		First(&metric)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &metric, nil
}

func (m *MetricStore) Latest(ctx context.Context, titleNumber int) (*model.Metric, error) {
	var metric model.Metric
	result := m.getDB(ctx).Where("title_number = ?", titleNumber).Order("analysis_date DESC").First(&metric)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &metric, nil
}

func (m *MetricStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return m.db.WithContext(ctx)
}
