package store

import (
	"gorm.io/gorm"
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type RefreshQueryFilter BaseQuerier

func NewRefreshQueryFilter() *RefreshQueryFilter {
	return &RefreshQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (rf *RefreshQueryFilter) ByType(t string) *RefreshQueryFilter {
	if t == "" {
		return rf
	}
	rf.QueryFn = append(rf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("type = ?", t)
	})
	return rf
}

type SectionAnalysisQueryFilter BaseQuerier

func NewSectionAnalysisQueryFilter() *SectionAnalysisQueryFilter {
	return &SectionAnalysisQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (sf *SectionAnalysisQueryFilter) ByTitleNumber(n int) *SectionAnalysisQueryFilter {
	sf.QueryFn = append(sf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("title_number = ?", n)
	})
	return sf
}

func (sf *SectionAnalysisQueryFilter) ByVersion(version string) *SectionAnalysisQueryFilter {
	sf.QueryFn = append(sf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("analysis_version = ?", version)
	})
	return sf
}

func (sf *SectionAnalysisQueryFilter) ByDocumentID(id string) *SectionAnalysisQueryFilter {
	sf.QueryFn = append(sf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("document_id = ?", id)
	})
	return sf
}

type SortOrder int

const (
	SortBySection SortOrder = iota
	SortByAntiquatedScore
	SortByBusinessUnfriendlyScore
)

type SectionAnalysisQueryOptions BaseQuerier

func NewSectionAnalysisQueryOptions() *SectionAnalysisQueryOptions {
	return &SectionAnalysisQueryOptions{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (o *SectionAnalysisQueryOptions) WithSortOrder(sort SortOrder) *SectionAnalysisQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		switch sort {
		case SortByAntiquatedScore:
			return tx.Order("antiquated_score DESC").Order("section_identifier")
		case SortByBusinessUnfriendlyScore:
			return tx.Order("business_unfriendly_score DESC").Order("section_identifier")
		default:
			return tx.Order("title_number").Order("section_identifier")
		}
	})
	return o
}

func (o *SectionAnalysisQueryOptions) WithLimit(limit int) *SectionAnalysisQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Limit(limit)
	})
	return o
}

type TitleQueryFilter BaseQuerier

func NewTitleQueryFilter() *TitleQueryFilter {
	return &TitleQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (tf *TitleQueryFilter) WithoutReserved() *TitleQueryFilter {
	tf.QueryFn = append(tf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("reserved = ?", false)
	})
	return tf
}
