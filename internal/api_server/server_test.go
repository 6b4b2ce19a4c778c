package apiserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	apiserver "github.com/ecfr-analyzer/ecfr-analyzer/internal/api_server"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/config"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/orchestrator"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/storetest"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/worker"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("api server", Ordered, func() {
	var (
		s       store.Store
		cfg     *config.Config
		cleanup func()
	)

	BeforeAll(func() {
		var err error
		s, _, cfg, cleanup, err = storetest.Open()
		Expect(err).To(BeNil())
		cfg.Service.AllowedOrigins = []string{"http://localhost:3000"}
	})

	AfterAll(func() {
		cleanup()
	})

	newRouter := func(orch *orchestrator.Orchestrator) http.Handler {
		srv := apiserver.New(cfg, s, nil, nil)
		if orch != nil {
			srv = apiserver.New(cfg, s, nil, orch)
		}
		router, err := srv.Router()
		Expect(err).To(BeNil())
		return router
	}

	serve := func(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	It("answers the health check with a request id", func() {
		router := newRouter(nil)
		rec := serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(MatchJSON(`{"status":"ok"}`))
		Expect(rec.Header().Get("X-Request-Id")).ToNot(BeEmpty())
	})

	It("keeps the caller's request id", func() {
		router := newRouter(nil)
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Request-Id", "req-42")
		rec := serve(router, req)
		Expect(rec.Header().Get("X-Request-Id")).To(Equal("req-42"))
	})

	It("returns 503 on thread routes when no orchestrator is wired", func() {
		router := newRouter(nil)
		rec := serve(router, httptest.NewRequest(http.MethodGet, "/threads/status", nil))
		Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))
	})

	It("serves the thread status of every job kind", func() {
		orch := orchestrator.New(s.Progress(), orchestrator.NewServeSpawner(worker.Deps{Config: cfg, Store: s}))
		Expect(orch.Init(context.TODO())).To(Succeed())
		router := newRouter(orch)

		rec := serve(router, httptest.NewRequest(http.MethodGet, "/threads/status", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		var body struct {
			Success bool                        `json:"success"`
			Threads []orchestrator.ThreadStatus `json:"threads"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body.Success).To(BeTrue())
		Expect(body.Threads).To(HaveLen(len(model.JobKinds)))
		for _, t := range body.Threads {
			Expect(t.Status).To(Equal(model.JobStatusStopped))
		}
	})

	It("allows the configured frontend origin", func() {
		router := newRouter(nil)
		req := httptest.NewRequest(http.MethodOptions, "/threads/status", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rec := serve(router, req)
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:3000"))
	})

	Context("request validation", func() {
		type status struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}

		reject := func(req *http.Request, code int) status {
			rec := serve(newRouter(nil), req)
			Expect(rec.Code).To(Equal(code))
			var body status
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Success).To(BeFalse())
			return body
		}

		It("rejects a job kind outside the enum before any handler runs", func() {
			body := reject(httptest.NewRequest(http.MethodPost, "/threads/indexing/start", nil), http.StatusBadRequest)
			Expect(body.Message).To(ContainSubstring("jobKind"))
		})

		It("rejects a start body of the wrong shape", func() {
			req := httptest.NewRequest(http.MethodPost, "/threads/text_metrics/start", strings.NewReader(`{"restart":"yes"}`))
			req.Header.Set("Content-Type", "application/json")
			reject(req, http.StatusBadRequest)
		})

		It("rejects a history limit that is not a number", func() {
			body := reject(httptest.NewRequest(http.MethodGet, "/refresh/history?limit=ten", nil), http.StatusBadRequest)
			Expect(body.Message).To(ContainSubstring("limit"))
		})

		It("rejects a malformed refresh type", func() {
			reject(httptest.NewRequest(http.MethodGet, "/refresh/progress?type=Titles%20X", nil), http.StatusBadRequest)
		})

		It("rejects a retry without a progress id", func() {
			req := httptest.NewRequest(http.MethodPost, "/refresh/retry-failed", strings.NewReader(`{}`))
			req.Header.Set("Content-Type", "application/json")
			body := reject(req, http.StatusBadRequest)
			Expect(body.Message).To(ContainSubstring("progressId"))
		})

		It("answers unknown routes with 404", func() {
			reject(httptest.NewRequest(http.MethodGet, "/threads", nil), http.StatusNotFound)
		})

		It("lets a valid request through to the handler", func() {
			rec := serve(newRouter(nil), httptest.NewRequest(http.MethodPost, "/threads/text_metrics/start", nil))
			Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))
		})
	})
})
