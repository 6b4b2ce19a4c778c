package store

import (
	"context"
	"errors"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VersionHistory interface {
	Upsert(ctx context.Context, history model.VersionHistory) (*model.VersionHistory, error)
	Get(ctx context.Context, titleNumber int) (*model.VersionHistory, error)
}

type VersionHistoryStore struct {
	db *gorm.DB
}

// Make sure we conform to VersionHistory interface
var _ VersionHistory = (*VersionHistoryStore)(nil)

func NewVersionHistoryStore(db *gorm.DB) VersionHistory {
	return &VersionHistoryStore{db: db}
}

func (v *VersionHistoryStore) Upsert(ctx context.Context, history model.VersionHistory) (*model.VersionHistory, error) {
	history.ID = 0
	result := v.getDB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "title_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"versions", "last_fetched", "updated_at"}),
	}).Create(&history)
	if result.Error != nil {
		return nil, result.Error
	}
	return v.Get(ctx, history.TitleNumber)
}

func (v *VersionHistoryStore) Get(ctx context.Context, titleNumber int) (*model.VersionHistory, error) {
	var history model.VersionHistory
	if err := v.getDB(ctx).Where("title_number = ?", titleNumber).First(&history).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &history, nil
}

func (v *VersionHistoryStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return v.db.WithContext(ctx)
}
