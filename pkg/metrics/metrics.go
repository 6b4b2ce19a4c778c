package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ecfrAnalyzer = "ecfr_analyzer"

	// Worker metrics
	workerSpawnsTotal   = "worker_spawns_total"
	jobItemsTotal       = "job_items_total"
	jobTransitionsTotal = "job_transitions_total"

	// Labels
	jobKindLabel  = "job_kind"
	outcomeLabel  = "outcome"
	statusLabel   = "status"
	spawnResLabel = "result"
)

/**
* Metrics definition
**/
var workerSpawnsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: ecfrAnalyzer,
		Name:      workerSpawnsTotal,
		Help:      "number of worker spawn attempts",
	},
	[]string{jobKindLabel, spawnResLabel},
)

var jobItemsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: ecfrAnalyzer,
		Name:      jobItemsTotal,
		Help:      "number of items reported by workers, partitioned by outcome",
	},
	[]string{jobKindLabel, outcomeLabel},
)

var jobTransitionsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: ecfrAnalyzer,
		Name:      jobTransitionsTotal,
		Help:      "number of job status transitions",
	},
	[]string{jobKindLabel, statusLabel},
)

func IncreaseWorkerSpawnsMetric(jobKind string, success bool) {
	result := "successful"
	if !success {
		result = "failed"
	}
	workerSpawnsTotalMetric.With(prometheus.Labels{jobKindLabel: jobKind, spawnResLabel: result}).Inc()
}

// AddJobItemsMetric adds the processed and failed deltas for jobKind.
func AddJobItemsMetric(jobKind string, processed, failed int) {
	if processed > 0 {
		jobItemsTotalMetric.With(prometheus.Labels{jobKindLabel: jobKind, outcomeLabel: "processed"}).Add(float64(processed))
	}
	if failed > 0 {
		jobItemsTotalMetric.With(prometheus.Labels{jobKindLabel: jobKind, outcomeLabel: "failed"}).Add(float64(failed))
	}
}

func IncreaseJobTransitionMetric(jobKind, status string) {
	jobTransitionsTotalMetric.With(prometheus.Labels{jobKindLabel: jobKind, statusLabel: status}).Inc()
}

type PrometheusMetricsHandler struct {
	handler http.Handler
}

func NewPrometheusMetricsHandler() *PrometheusMetricsHandler {
	return &PrometheusMetricsHandler{handler: promhttp.Handler()}
}

func (p *PrometheusMetricsHandler) Handler() http.Handler {
	return p.handler
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(workerSpawnsTotalMetric)
	prometheus.MustRegister(jobItemsTotalMetric)
	prometheus.MustRegister(jobTransitionsTotalMetric)
}
