package store

import (
	"context"
	"errors"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SectionAnalysis interface {
	Upsert(ctx context.Context, analysis model.SectionAnalysis) (*model.SectionAnalysis, error)
	Get(ctx context.Context, documentID, version string) (*model.SectionAnalysis, error)
	List(ctx context.Context, filter *SectionAnalysisQueryFilter, opts *SectionAnalysisQueryOptions) (model.SectionAnalysisList, error)
	Count(ctx context.Context, filter *SectionAnalysisQueryFilter) (int64, error)
}

type SectionAnalysisStore struct {
	db *gorm.DB
}

// Make sure we conform to SectionAnalysis interface
var _ SectionAnalysis = (*SectionAnalysisStore)(nil)

func NewSectionAnalysisStore(db *gorm.DB) SectionAnalysis {
	return &SectionAnalysisStore{db: db}
}

func (s *SectionAnalysisStore) Upsert(ctx context.Context, analysis model.SectionAnalysis) (*model.SectionAnalysis, error) {
	result := s.getDB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "document_id"}, {Name: "analysis_version"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title_number",
			"section_identifier",
			"summary",
			"antiquated_score",
			"antiquated_explanation",
			"business_unfriendly_score",
			"business_unfriendly_explanation",
			"metadata",
			"analysis_date",
			"updated_at",
		}),
	}).Create(&analysis)
	if result.Error != nil {
		return nil, result.Error
	}
	return s.Get(ctx, analysis.DocumentID, analysis.AnalysisVersion)
}

func (s *SectionAnalysisStore) Get(ctx context.Context, documentID, version string) (*model.SectionAnalysis, error) {
	var analysis model.SectionAnalysis
	result := s.getDB(ctx).Where("document_id = ? AND analysis_version = ?", documentID, version).First(&analysis)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &analysis, nil
}

func (s *SectionAnalysisStore) List(ctx context.Context, filter *SectionAnalysisQueryFilter, opts *SectionAnalysisQueryOptions) (model.SectionAnalysisList, error) {
	var list model.SectionAnalysisList
	tx := s.getDB(ctx).Model(&list)
	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}
	if opts != nil {
		for _, fn := range opts.QueryFn {
			tx = fn(tx)
		}
	} else {
		tx = tx.Order("title_number").Order("section_identifier")
	}
	if err := tx.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (s *SectionAnalysisStore) Count(ctx context.Context, filter *SectionAnalysisQueryFilter) (int64, error) {
	var count int64
	tx := s.getDB(ctx).Model(&model.SectionAnalysis{})
	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *SectionAnalysisStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db.WithContext(ctx)
}
