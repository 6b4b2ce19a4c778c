package v1

import (
	"context"
	"net/http"

	api "github.com/ecfr-analyzer/ecfr-analyzer/api/v1"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/api/server"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/handlers/validator"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/orchestrator"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/service"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// Orchestrator is the control surface the thread routes drive.
type Orchestrator interface {
	Start(ctx context.Context, kind model.JobKind, restart bool) error
	Stop(ctx context.Context, kind model.JobKind) error
	Restart(ctx context.Context, kind model.JobKind) error
	Status(ctx context.Context) ([]orchestrator.ThreadStatus, error)
}

type ServiceHandler struct {
	orch       Orchestrator
	refreshSrv *service.RefreshService
	validator  *validator.Validator
}

// Make sure we conform to the generated strict server
var _ server.StrictServerInterface = (*ServiceHandler)(nil)

// NewServiceHandler builds the API handler. A nil orch answers every thread
// route with 503.
func NewServiceHandler(orch Orchestrator, refreshService *service.RefreshService) *ServiceHandler {
	v := validator.NewValidator()
	v.Register(validator.NewThreadValidationRules()...)
	v.Register(validator.NewRefreshValidationRules()...)
	return &ServiceHandler{orch: orch, refreshSrv: refreshService, validator: v}
}

// Register mounts the generated routes on router. Parameter and body
// decoding errors are answered with the same {success, message} envelope as
// the handlers.
func Register(router chi.Router, h *ServiceHandler) http.Handler {
	strict := server.NewStrictHandlerWithOptions(h, nil, server.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  renderError(http.StatusBadRequest),
		ResponseErrorHandlerFunc: renderError(http.StatusInternalServerError),
	})
	return server.HandlerWithOptions(strict, server.ChiServerOptions{
		BaseRouter:       router,
		ErrorHandlerFunc: renderError(http.StatusBadRequest),
	})
}

func renderError(status int) func(w http.ResponseWriter, r *http.Request, err error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		render.Status(r, status)
		render.JSON(w, r, api.Status{Success: false, Message: err.Error()})
	}
}

// (GET /health)
func (h *ServiceHandler) GetHealth(ctx context.Context, request server.GetHealthRequestObject) (server.GetHealthResponseObject, error) {
	return server.GetHealth200JSONResponse{Status: "ok"}, nil
}
