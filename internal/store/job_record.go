package store

import (
	"context"
	"errors"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Progress is the durable store of per-job state. All job state transitions
// go through Apply.
type Progress interface {
	Ensure(ctx context.Context, kind model.JobKind) (*model.JobRecord, error)
	Load(ctx context.Context, kind model.JobKind) (*model.JobRecord, error)
	Apply(ctx context.Context, kind model.JobKind, patches ...Patch) (*model.JobRecord, error)
	ListAll(ctx context.Context) ([]model.JobRecord, error)
}

type ProgressStore struct {
	db *gorm.DB
}

// Make sure we conform to Progress interface
var _ Progress = (*ProgressStore)(nil)

func NewProgressStore(db *gorm.DB) Progress {
	return &ProgressStore{db: db}
}

func (p *ProgressStore) Ensure(ctx context.Context, kind model.JobKind) (*model.JobRecord, error) {
	record := model.NewJobRecord(kind)
	result := p.getDB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "job_kind"}},
		DoNothing: true,
	}).Create(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	return p.Load(ctx, kind)
}

func (p *ProgressStore) Load(ctx context.Context, kind model.JobKind) (*model.JobRecord, error) {
	var record model.JobRecord
	result := p.getDB(ctx).Where("job_kind = ?", kind).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &record, nil
}

// Apply loads the record, folds the patches into it and saves it in a
// single transaction. When ctx already carries a transaction it is reused.
func (p *ProgressStore) Apply(ctx context.Context, kind model.JobKind, patches ...Patch) (*model.JobRecord, error) {
	var record model.JobRecord
	err := withTransaction(ctx, p.db, func(ctx context.Context) error {
		tx := p.getDB(ctx)
		if err := tx.Where("job_kind = ?", kind).First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}
		ApplyPatches(&record, patches...)
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (p *ProgressStore) ListAll(ctx context.Context) ([]model.JobRecord, error) {
	var records []model.JobRecord
	if err := p.getDB(ctx).Order("job_kind").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (p *ProgressStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return p.db.WithContext(ctx)
}
