package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"go.uber.org/zap"
)

const (
	DefaultRefreshType  = "titles"
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

// RefreshService exposes the ingestion pipeline's refresh records. Records
// are written by the pipeline; the only mutation offered here resets the
// failed titles so the next pass picks them up again.
type RefreshService struct {
	store store.Store
	log   *zap.SugaredLogger
}

func NewRefreshService(s store.Store) *RefreshService {
	return &RefreshService{store: s, log: zap.S().Named("refresh_service")}
}

// Progress returns the most recent record of refreshType.
func (rs *RefreshService) Progress(ctx context.Context, refreshType string) (*model.RefreshRecord, error) {
	if refreshType == "" {
		refreshType = DefaultRefreshType
	}
	record, err := rs.store.Refresh().Latest(ctx, store.NewRefreshQueryFilter().ByType(refreshType))
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrRefreshTypeNotFound(refreshType)
		}
		return nil, fmt.Errorf("failed to get refresh progress: %w", err)
	}
	return record, nil
}

// History returns the latest records, newest first. An empty refreshType
// lists every type. The limit is clamped to [1, MaxHistoryLimit].
func (rs *RefreshService) History(ctx context.Context, refreshType string, limit int) (model.RefreshRecordList, error) {
	records, err := rs.store.Refresh().List(ctx, store.NewRefreshQueryFilter().ByType(refreshType), ClampHistoryLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list refresh history: %w", err)
	}
	return records, nil
}

// RetryFailed empties the failed titles of record id and puts it back in
// progress.
func (rs *RefreshService) RetryFailed(ctx context.Context, id uint) (*model.RefreshRecord, error) {
	ctx, err := rs.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}

	record, err := rs.store.Refresh().ClearFailedTitles(ctx, id)
	if err != nil {
		_, _ = store.Rollback(ctx)
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrRefreshNotFound(id)
		}
		return nil, fmt.Errorf("failed to clear failed titles: %w", err)
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit retry of refresh %d: %w", id, err)
	}
	rs.log.Infow("failed titles queued for retry", "refresh_id", id)
	return record, nil
}

func ClampHistoryLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	default:
		return limit
	}
}
