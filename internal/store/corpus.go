package store

import (
	"context"
	"errors"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Corpus reads the titles and section documents written by the ingestion
// pipeline.
type Corpus interface {
	ListTitles(ctx context.Context, filter *TitleQueryFilter) (model.TitleList, error)
	ListDocuments(ctx context.Context, titleNumber int) (model.DocumentList, error)
	ListSectionRefs(ctx context.Context) ([]model.SectionRef, error)
	GetDocument(ctx context.Context, id string) (*model.Document, error)
	UpsertTitle(ctx context.Context, title model.Title) error
	UpsertDocument(ctx context.Context, doc model.Document) error
}

type CorpusStore struct {
	db *gorm.DB
}

// Make sure we conform to Corpus interface
var _ Corpus = (*CorpusStore)(nil)

func NewCorpusStore(db *gorm.DB) Corpus {
	return &CorpusStore{db: db}
}

func (c *CorpusStore) ListTitles(ctx context.Context, filter *TitleQueryFilter) (model.TitleList, error) {
	var titles model.TitleList
	tx := c.getDB(ctx).Model(&titles).Order("number")
	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}
	if err := tx.Find(&titles).Error; err != nil {
		return nil, err
	}
	return titles, nil
}

func (c *CorpusStore) ListDocuments(ctx context.Context, titleNumber int) (model.DocumentList, error) {
	var docs model.DocumentList
	result := c.getDB(ctx).
		Where("title_number = ?", titleNumber).
		Order("section_identifier").
		Find(&docs)
	if result.Error != nil {
		return nil, result.Error
	}
	return docs, nil
}

// ListSectionRefs returns every section ordered by title number, then by
// section identifier. The order is total so that a (title, section) pair is
// enough to resume an interrupted walk.
func (c *CorpusStore) ListSectionRefs(ctx context.Context) ([]model.SectionRef, error) {
	var refs []model.SectionRef
	result := c.getDB(ctx).Model(&model.Document{}).
		Select("id AS document_id, title_number, section_identifier").
		Order("title_number").
		Order("section_identifier").
		Order("id").
		Scan(&refs)
	if result.Error != nil {
		return nil, result.Error
	}
	return refs, nil
}

func (c *CorpusStore) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	var doc model.Document
	if err := c.getDB(ctx).First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (c *CorpusStore) UpsertTitle(ctx context.Context, title model.Title) error {
	return c.getDB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "number"}},
		UpdateAll: true,
	}).Create(&title).Error
}

func (c *CorpusStore) UpsertDocument(ctx context.Context, doc model.Document) error {
	return c.getDB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&doc).Error
}

func (c *CorpusStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return c.db.WithContext(ctx)
}
