package v1

import (
	"context"
	"errors"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/api/server"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/handlers/v1/mappers"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/service"
	"github.com/ecfr-analyzer/ecfr-analyzer/pkg/requestid"
)

const internalErrorMessage = "internal error"

type refreshQuery struct {
	Type  string `json:"type" validate:"omitempty,refresh_type"`
	Limit int    `json:"limit" validate:"gte=0"`
}

type retryFailedForm struct {
	ProgressID int `json:"progressId" validate:"required,gt=0"`
}

// (GET /refresh/progress)
func (h *ServiceHandler) GetRefreshProgress(ctx context.Context, request server.GetRefreshProgressRequestObject) (server.GetRefreshProgressResponseObject, error) {
	query := refreshQuery{}
	if request.Params.Type != nil {
		query.Type = *request.Params.Type
	}
	if err := h.validator.Struct(query); err != nil {
		return server.GetRefreshProgress400JSONResponse{Message: err.Error()}, nil
	}

	record, err := h.refreshSrv.Progress(ctx, query.Type)
	if err != nil {
		if isNotFound(err) {
			return server.GetRefreshProgress404JSONResponse{Message: err.Error()}, nil
		}
		requestid.Logger(ctx, "refresh_handler").Errorw("failed to read refresh progress", "error", err)
		return server.GetRefreshProgress500JSONResponse{Message: internalErrorMessage}, nil
	}
	return server.GetRefreshProgress200JSONResponse(mappers.RefreshRecordToApi(*record)), nil
}

// (GET /refresh/history)
func (h *ServiceHandler) GetRefreshHistory(ctx context.Context, request server.GetRefreshHistoryRequestObject) (server.GetRefreshHistoryResponseObject, error) {
	query := refreshQuery{}
	if request.Params.Type != nil {
		query.Type = *request.Params.Type
	}
	if request.Params.Limit != nil {
		query.Limit = *request.Params.Limit
	}
	if err := h.validator.Struct(query); err != nil {
		return server.GetRefreshHistory400JSONResponse{Message: err.Error()}, nil
	}

	records, err := h.refreshSrv.History(ctx, query.Type, query.Limit)
	if err != nil {
		requestid.Logger(ctx, "refresh_handler").Errorw("failed to list refresh history", "error", err)
		return server.GetRefreshHistory500JSONResponse{Message: internalErrorMessage}, nil
	}
	return server.GetRefreshHistory200JSONResponse{Success: true, History: mappers.RefreshRecordListToApi(records)}, nil
}

// (POST /refresh/retry-failed)
func (h *ServiceHandler) RetryFailedRefresh(ctx context.Context, request server.RetryFailedRefreshRequestObject) (server.RetryFailedRefreshResponseObject, error) {
	if request.Body == nil {
		return server.RetryFailedRefresh400JSONResponse{Message: "empty body"}, nil
	}
	form := retryFailedForm{ProgressID: request.Body.ProgressId}
	if err := h.validator.Struct(form); err != nil {
		return server.RetryFailedRefresh400JSONResponse{Message: err.Error()}, nil
	}

	record, err := h.refreshSrv.RetryFailed(ctx, uint(form.ProgressID))
	if err != nil {
		if isNotFound(err) {
			return server.RetryFailedRefresh404JSONResponse{Message: err.Error()}, nil
		}
		requestid.Logger(ctx, "refresh_handler").Errorw("failed to retry failed titles", "progress_id", form.ProgressID, "error", err)
		return server.RetryFailedRefresh500JSONResponse{Message: internalErrorMessage}, nil
	}
	return server.RetryFailedRefresh200JSONResponse{
		Success:  true,
		Message:  "Failed titles queued for retry",
		Progress: mappers.RefreshRecordToApi(*record),
	}, nil
}

func isNotFound(err error) bool {
	var notFound *service.ErrResourceNotFound
	return errors.As(err, &notFound)
}
