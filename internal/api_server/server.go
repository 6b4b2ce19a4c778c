package apiserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	api "github.com/ecfr-analyzer/ecfr-analyzer/api/v1"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/config"
	handlers "github.com/ecfr-analyzer/ecfr-analyzer/internal/handlers/v1"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/service"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store"
	"github.com/ecfr-analyzer/ecfr-analyzer/pkg/metrics"
	"github.com/ecfr-analyzer/ecfr-analyzer/pkg/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	oapimiddleware "github.com/oapi-codegen/nethttp-middleware"
	"go.uber.org/zap"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
	healthPath              = "/health"
	threadStatusPath        = "/threads/status"
)

type Server struct {
	cfg      *config.Config
	store    store.Store
	listener net.Listener
	orch     handlers.Orchestrator
}

// New returns a new instance of the eCFR analyzer API server. A nil orch
// leaves the thread routes answering 503.
func New(
	cfg *config.Config,
	store store.Store,
	listener net.Listener,
	orch handlers.Orchestrator,
) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		listener: listener,
		orch:     orch,
	}
}

// oapiErrorHandler answers requests the OpenAPI document rejects with the
// same envelope as the handlers.
func oapiErrorHandler(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(api.Status{Success: false, Message: fmt.Sprintf("API Error: %s", message)})
}

// Router builds the HTTP handler. The metrics middleware is registered by
// Run so tests can build several routers in one process.
func (s *Server) Router(extra ...func(http.Handler) http.Handler) (chi.Router, error) {
	swagger, err := api.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("failed to load swagger spec: %w", err)
	}
	// Skip server name validation
	swagger.Servers = nil

	oapiOpts := oapimiddleware.Options{
		ErrorHandler: oapiErrorHandler,
	}

	router := chi.NewRouter()

	middlewares := append(extra,
		cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.Service.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		middleware.RequestID,
		middleware.Logger(healthPath, threadStatusPath),
		chiMiddleware.Recoverer,
		oapimiddleware.OapiRequestValidatorWithOptions(swagger, &oapiOpts),
	)
	router.Use(middlewares...)

	h := handlers.NewServiceHandler(s.orch, service.NewRefreshService(s.store))
	handlers.Register(router, h)

	return router, nil
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()

	router, err := s.Router(metricMiddleware.Handler)
	if err != nil {
		return err
	}
	srv := http.Server{Addr: s.cfg.Service.Address, Handler: router}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
