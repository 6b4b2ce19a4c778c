package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	api "github.com/ecfr-analyzer/ecfr-analyzer/api/v1"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/api/server"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/handlers/v1/mappers"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/orchestrator"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"github.com/ecfr-analyzer/ecfr-analyzer/pkg/requestid"
)

const threadManagerUnavailable = "Thread manager not initialized"

type threadForm struct {
	JobKind string `json:"jobKind" validate:"required,job_kind"`
}

// (GET /threads/status)
func (h *ServiceHandler) GetThreadsStatus(ctx context.Context, request server.GetThreadsStatusRequestObject) (server.GetThreadsStatusResponseObject, error) {
	if h.orch == nil {
		return server.GetThreadsStatus503JSONResponse{Message: threadManagerUnavailable}, nil
	}
	threads, err := h.orch.Status(ctx)
	if err != nil {
		requestid.Logger(ctx, "thread_handler").Errorw("failed to read thread status", "error", err)
		return server.GetThreadsStatus500JSONResponse{Message: "failed to read thread status"}, nil
	}
	return server.GetThreadsStatus200JSONResponse{Success: true, Threads: mappers.ThreadStatusListToApi(threads)}, nil
}

// (POST /threads/{jobKind}/start)
func (h *ServiceHandler) StartThread(ctx context.Context, request server.StartThreadRequestObject) (server.StartThreadResponseObject, error) {
	if h.orch == nil {
		return server.StartThread503JSONResponse{Message: threadManagerUnavailable}, nil
	}
	kind, err := h.jobKind(request.JobKind)
	if err != nil {
		return server.StartThread400JSONResponse{Message: err.Error()}, nil
	}

	restart := request.Body != nil && request.Body.Restart != nil && *request.Body.Restart
	if err := h.orch.Start(ctx, kind, restart); err != nil {
		switch status, msg := h.threadFailure(ctx, "start", kind, err); status {
		case http.StatusBadRequest:
			return server.StartThread400JSONResponse{Message: msg}, nil
		case http.StatusConflict:
			return server.StartThread409JSONResponse{Message: msg}, nil
		default:
			return server.StartThread500JSONResponse{Message: msg}, nil
		}
	}
	return server.StartThread200JSONResponse{Success: true, Message: fmt.Sprintf("Thread %s started", kind)}, nil
}

// (POST /threads/{jobKind}/stop)
func (h *ServiceHandler) StopThread(ctx context.Context, request server.StopThreadRequestObject) (server.StopThreadResponseObject, error) {
	if h.orch == nil {
		return server.StopThread503JSONResponse{Message: threadManagerUnavailable}, nil
	}
	kind, err := h.jobKind(request.JobKind)
	if err != nil {
		return server.StopThread400JSONResponse{Message: err.Error()}, nil
	}

	if err := h.orch.Stop(ctx, kind); err != nil {
		switch status, msg := h.threadFailure(ctx, "stop", kind, err); status {
		case http.StatusBadRequest:
			return server.StopThread400JSONResponse{Message: msg}, nil
		case http.StatusConflict:
			return server.StopThread409JSONResponse{Message: msg}, nil
		default:
			return server.StopThread500JSONResponse{Message: msg}, nil
		}
	}
	return server.StopThread200JSONResponse{Success: true, Message: fmt.Sprintf("Thread %s stopped", kind)}, nil
}

// (POST /threads/{jobKind}/restart)
func (h *ServiceHandler) RestartThread(ctx context.Context, request server.RestartThreadRequestObject) (server.RestartThreadResponseObject, error) {
	if h.orch == nil {
		return server.RestartThread503JSONResponse{Message: threadManagerUnavailable}, nil
	}
	kind, err := h.jobKind(request.JobKind)
	if err != nil {
		return server.RestartThread400JSONResponse{Message: err.Error()}, nil
	}

	if err := h.orch.Restart(ctx, kind); err != nil {
		switch status, msg := h.threadFailure(ctx, "restart", kind, err); status {
		case http.StatusBadRequest:
			return server.RestartThread400JSONResponse{Message: msg}, nil
		case http.StatusConflict:
			return server.RestartThread409JSONResponse{Message: msg}, nil
		default:
			return server.RestartThread500JSONResponse{Message: msg}, nil
		}
	}
	return server.RestartThread200JSONResponse{Success: true, Message: fmt.Sprintf("Thread %s restarted", kind)}, nil
}

// jobKind checks the path value again: the generated router binds any
// string, and only the request validator in front of it knows the enum.
func (h *ServiceHandler) jobKind(kind api.JobKind) (model.JobKind, error) {
	if err := h.validator.Struct(threadForm{JobKind: string(kind)}); err != nil {
		return "", err
	}
	return model.JobKind(kind), nil
}

func (h *ServiceHandler) threadFailure(ctx context.Context, op string, kind model.JobKind, err error) (int, string) {
	var (
		unknown        *orchestrator.ErrUnknownJobKind
		alreadyRunning *orchestrator.ErrJobAlreadyRunning
		notRunning     *orchestrator.ErrJobNotRunning
	)
	switch {
	case errors.As(err, &unknown):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &alreadyRunning), errors.As(err, &notRunning):
		return http.StatusConflict, err.Error()
	default:
		requestid.Logger(ctx, "thread_handler").Errorw("thread operation failed", "operation", op, "job_kind", kind, "error", err)
		return http.StatusInternalServerError, fmt.Sprintf("failed to %s thread %s: %s", op, kind, err)
	}
}
