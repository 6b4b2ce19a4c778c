package v1_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"

	api "github.com/ecfr-analyzer/ecfr-analyzer/api/v1"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/api/server"
	handlers "github.com/ecfr-analyzer/ecfr-analyzer/internal/handlers/v1"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/orchestrator"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"github.com/go-chi/chi/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type call struct {
	op      string
	kind    model.JobKind
	restart bool
}

type fakeOrchestrator struct {
	calls    []call
	startErr error
	stopErr  error
	statuses []orchestrator.ThreadStatus
}

func (f *fakeOrchestrator) Start(ctx context.Context, kind model.JobKind, restart bool) error {
	f.calls = append(f.calls, call{op: "start", kind: kind, restart: restart})
	return f.startErr
}

func (f *fakeOrchestrator) Stop(ctx context.Context, kind model.JobKind) error {
	f.calls = append(f.calls, call{op: "stop", kind: kind})
	return f.stopErr
}

func (f *fakeOrchestrator) Restart(ctx context.Context, kind model.JobKind) error {
	f.calls = append(f.calls, call{op: "restart", kind: kind})
	return nil
}

func (f *fakeOrchestrator) Status(ctx context.Context) ([]orchestrator.ThreadStatus, error) {
	return f.statuses, nil
}

type reply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func do(router http.Handler, method, path, body string) (int, reply) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var r reply
	Expect(json.Unmarshal(rec.Body.Bytes(), &r)).To(Succeed())
	return rec.Code, r
}

func typeOf(v any) string {
	return reflect.TypeOf(v).String()
}

func restart(v bool) *api.StartThreadJSONRequestBody {
	return &api.StartThreadJSONRequestBody{Restart: &v}
}

var _ = Describe("thread handler", func() {
	var (
		fake *fakeOrchestrator
		srv  *handlers.ServiceHandler
	)

	BeforeEach(func() {
		fake = &fakeOrchestrator{}
		srv = handlers.NewServiceHandler(fake, nil)
	})

	Context("start", func() {
		It("starts a job without a body", func() {
			resp, err := srv.StartThread(context.TODO(), server.StartThreadRequestObject{JobKind: api.JobKindTextMetrics})
			Expect(err).To(BeNil())
			Expect(typeOf(resp)).To(Equal(typeOf(server.StartThread200JSONResponse{})))
			Expect(resp.(server.StartThread200JSONResponse).Success).To(BeTrue())
			Expect(fake.calls).To(Equal([]call{{op: "start", kind: model.JobKindTextMetrics}}))
		})

		It("passes the restart flag", func() {
			resp, err := srv.StartThread(context.TODO(), server.StartThreadRequestObject{JobKind: api.JobKindSectionAnalysis, Body: restart(true)})
			Expect(err).To(BeNil())
			Expect(typeOf(resp)).To(Equal(typeOf(server.StartThread200JSONResponse{})))
			Expect(fake.calls).To(Equal([]call{{op: "start", kind: model.JobKindSectionAnalysis, restart: true}}))
		})

		It("returns 400 for an unknown job kind", func() {
			resp, err := srv.StartThread(context.TODO(), server.StartThreadRequestObject{JobKind: "indexing"})
			Expect(err).To(BeNil())
			Expect(typeOf(resp)).To(Equal(typeOf(server.StartThread400JSONResponse{})))
			Expect(resp.(server.StartThread400JSONResponse)).To(Equal(server.StartThread400JSONResponse{Message: "unknown job kind: indexing"}))
			Expect(fake.calls).To(BeEmpty())
		})

		It("returns 409 when the job is already running", func() {
			fake.startErr = orchestrator.NewErrJobAlreadyRunning()
			resp, err := srv.StartThread(context.TODO(), server.StartThreadRequestObject{JobKind: api.JobKindTextMetrics})
			Expect(err).To(BeNil())
			Expect(resp).To(Equal(server.StartThread409JSONResponse{Success: false, Message: "Thread is already running"}))
		})

		It("returns 500 on other failures", func() {
			fake.startErr = errors.New("database is locked")
			resp, err := srv.StartThread(context.TODO(), server.StartThreadRequestObject{JobKind: api.JobKindTextMetrics})
			Expect(err).To(BeNil())
			Expect(typeOf(resp)).To(Equal(typeOf(server.StartThread500JSONResponse{})))
			Expect(resp.(server.StartThread500JSONResponse).Message).To(ContainSubstring("database is locked"))
		})
	})

	Context("stop and restart", func() {
		It("stops a job", func() {
			resp, err := srv.StopThread(context.TODO(), server.StopThreadRequestObject{JobKind: api.JobKindAgeDistribution})
			Expect(err).To(BeNil())
			Expect(resp).To(Equal(server.StopThread200JSONResponse{Success: true, Message: "Thread age_distribution stopped"}))
			Expect(fake.calls).To(Equal([]call{{op: "stop", kind: model.JobKindAgeDistribution}}))
		})

		It("returns 409 when the job is not running", func() {
			fake.stopErr = orchestrator.NewErrJobNotRunning()
			resp, err := srv.StopThread(context.TODO(), server.StopThreadRequestObject{JobKind: api.JobKindAgeDistribution})
			Expect(err).To(BeNil())
			Expect(typeOf(resp)).To(Equal(typeOf(server.StopThread409JSONResponse{})))
		})

		It("restarts a job", func() {
			resp, err := srv.RestartThread(context.TODO(), server.RestartThreadRequestObject{JobKind: api.JobKindVersionHistory})
			Expect(err).To(BeNil())
			Expect(typeOf(resp)).To(Equal(typeOf(server.RestartThread200JSONResponse{})))
			Expect(fake.calls).To(Equal([]call{{op: "restart", kind: model.JobKindVersionHistory}}))
		})

		It("returns 400 for an unknown job kind", func() {
			resp, err := srv.RestartThread(context.TODO(), server.RestartThreadRequestObject{JobKind: "indexing"})
			Expect(err).To(BeNil())
			Expect(typeOf(resp)).To(Equal(typeOf(server.RestartThread400JSONResponse{})))
			Expect(fake.calls).To(BeEmpty())
		})
	})

	Context("status", func() {
		It("lists every thread", func() {
			fake.statuses = []orchestrator.ThreadStatus{
				{JobKind: model.JobKindTextMetrics, Status: model.JobStatusCompleted, Progress: model.NewProgress(3, 3)},
				{JobKind: model.JobKindSectionAnalysis, Status: model.JobStatusRunning, Progress: model.NewProgress(30, 100),
					CurrentItem: &model.CurrentItem{TitleNumber: 4, TitleName: "Title 4", Description: "4.0030"}},
			}
			resp, err := srv.GetThreadsStatus(context.TODO(), server.GetThreadsStatusRequestObject{})
			Expect(err).To(BeNil())
			Expect(typeOf(resp)).To(Equal(typeOf(server.GetThreadsStatus200JSONResponse{})))
			body := resp.(server.GetThreadsStatus200JSONResponse)
			Expect(body.Success).To(BeTrue())
			Expect(body.Threads).To(HaveLen(2))
			Expect(body.Threads[1].Progress).To(Equal(api.Progress{Current: 30, Total: 100, Percentage: 30}))
			Expect(body.Threads[1].CurrentItem.Description).To(Equal("4.0030"))
			Expect(body.Threads[0].CurrentItem).To(BeNil())
		})

		It("serializes an empty list as an array", func() {
			router := chi.NewRouter()
			handlers.Register(router, srv)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/threads/status", nil))
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchJSON(`{"success":true,"threads":[]}`))
		})
	})

	Context("without an orchestrator", func() {
		It("returns 503 on every route", func() {
			srv := handlers.NewServiceHandler(nil, nil)
			router := chi.NewRouter()
			handlers.Register(router, srv)

			for _, path := range []string{"/threads/text_metrics/start", "/threads/text_metrics/stop", "/threads/text_metrics/restart"} {
				code, r := do(router, http.MethodPost, path, "")
				Expect(code).To(Equal(http.StatusServiceUnavailable))
				Expect(r).To(Equal(reply{Success: false, Message: "Thread manager not initialized"}))
			}
			code, _ := do(router, http.MethodGet, "/threads/status", "")
			Expect(code).To(Equal(http.StatusServiceUnavailable))
		})
	})

	Context("routing", func() {
		var router *chi.Mux

		BeforeEach(func() {
			router = chi.NewRouter()
			handlers.Register(router, srv)
		})

		It("decodes the restart flag from the body", func() {
			code, r := do(router, http.MethodPost, "/threads/section_analysis/start", `{"restart":true}`)
			Expect(code).To(Equal(http.StatusOK))
			Expect(r.Message).To(Equal("Thread section_analysis started"))
			Expect(fake.calls).To(Equal([]call{{op: "start", kind: model.JobKindSectionAnalysis, restart: true}}))
		})

		It("answers a malformed body with the error envelope", func() {
			code, r := do(router, http.MethodPost, "/threads/text_metrics/start", `{"restart":`)
			Expect(code).To(Equal(http.StatusBadRequest))
			Expect(r.Success).To(BeFalse())
			Expect(r.Message).To(ContainSubstring("can't decode JSON body"))
			Expect(fake.calls).To(BeEmpty())
		})

		It("answers the health check", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchJSON(`{"status":"ok"}`))
		})
	})
})
