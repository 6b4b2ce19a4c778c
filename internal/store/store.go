package store

import (
	"context"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"gorm.io/gorm"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Progress() Progress
	Refresh() Refresh
	SectionAnalysis() SectionAnalysis
	Metric() Metric
	VersionHistory() VersionHistory
	Corpus() Corpus
	InitialMigration(ctx context.Context) error
	Close() error
}

type DataStore struct {
	db              *gorm.DB
	progress        Progress
	refresh         Refresh
	sectionAnalysis SectionAnalysis
	metric          Metric
	versionHistory  VersionHistory
	corpus          Corpus
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		progress:        NewProgressStore(db),
		refresh:         NewRefreshStore(db),
		sectionAnalysis: NewSectionAnalysisStore(db),
		metric:          NewMetricStore(db),
		versionHistory:  NewVersionHistoryStore(db),
		corpus:          NewCorpusStore(db),
		db:              db,
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) Progress() Progress {
	return s.progress
}

func (s *DataStore) Refresh() Refresh {
	return s.refresh
}

func (s *DataStore) SectionAnalysis() SectionAnalysis {
	return s.sectionAnalysis
}

func (s *DataStore) Metric() Metric {
	return s.metric
}

func (s *DataStore) VersionHistory() VersionHistory {
	return s.versionHistory
}

func (s *DataStore) Corpus() Corpus {
	return s.corpus
}

// InitialMigration creates every table and index from the models.
func (s *DataStore) InitialMigration(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&model.JobRecord{},
		&model.RefreshRecord{},
		&model.SectionAnalysis{},
		&model.Metric{},
		&model.VersionHistory{},
		&model.Title{},
		&model.Document{},
	)
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
