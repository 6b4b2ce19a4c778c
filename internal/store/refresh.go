package store

import (
	"context"
	"errors"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"gorm.io/gorm"
)

type Refresh interface {
	Latest(ctx context.Context, filter *RefreshQueryFilter) (*model.RefreshRecord, error)
	List(ctx context.Context, filter *RefreshQueryFilter, limit int) (model.RefreshRecordList, error)
	Get(ctx context.Context, id uint) (*model.RefreshRecord, error)
	Create(ctx context.Context, record model.RefreshRecord) (*model.RefreshRecord, error)
	ClearFailedTitles(ctx context.Context, id uint) (*model.RefreshRecord, error)
}

type RefreshStore struct {
	db *gorm.DB
}

// Make sure we conform to Refresh interface
var _ Refresh = (*RefreshStore)(nil)

func NewRefreshStore(db *gorm.DB) Refresh {
	return &RefreshStore{db: db}
}

func (r *RefreshStore) Latest(ctx context.Context, filter *RefreshQueryFilter) (*model.RefreshRecord, error) {
	records, err := r.List(ctx, filter, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrRecordNotFound
	}
	return &records[0], nil
}

func (r *RefreshStore) List(ctx context.Context, filter *RefreshQueryFilter, limit int) (model.RefreshRecordList, error) {
	var records model.RefreshRecordList
	tx := r.getDB(ctx).Model(&records).Order("started_at DESC").Order("id DESC")
	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *RefreshStore) Get(ctx context.Context, id uint) (*model.RefreshRecord, error) {
	var record model.RefreshRecord
	if err := r.getDB(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *RefreshStore) Create(ctx context.Context, record model.RefreshRecord) (*model.RefreshRecord, error) {
	if err := r.getDB(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return &record, nil
}

// ClearFailedTitles empties the failed titles and puts the record back in
// progress so the ingestion pipeline picks the titles up on its next pass.
func (r *RefreshStore) ClearFailedTitles(ctx context.Context, id uint) (*model.RefreshRecord, error) {
	var record model.RefreshRecord
	err := withTransaction(ctx, r.db, func(ctx context.Context) error {
		tx := r.getDB(ctx)
		if err := tx.First(&record, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}
		record.FailedTitles = []model.FailedTitle{}
		record.Status = model.RefreshStatusInProgress
		record.LastError = nil
		record.CompletedAt = nil
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *RefreshStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}
