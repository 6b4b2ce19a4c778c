package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// JobLister is the slice of the progress store the collector reads.
type JobLister interface {
	ListAll(ctx context.Context) ([]model.JobRecord, error)
}

type jobStatsCollector struct {
	jobs         JobLister
	status       *prometheus.Desc
	progress     *prometheus.Desc
	itemsFailed  *prometheus.Desc
	totalRunTime *prometheus.Desc
	avgItemTime  *prometheus.Desc
}

func newJobStatsCollector(jobs JobLister) prometheus.Collector {
	fqName := func(name string) string {
		return fmt.Sprintf("%s_job_%s", ecfrAnalyzer, name)
	}

	return &jobStatsCollector{
		jobs: jobs,
		status: prometheus.NewDesc(
			fqName("status"),
			"Current status of each job. The series for the active status is 1.",
			[]string{jobKindLabel, statusLabel},
			prometheus.Labels{},
		),
		progress: prometheus.NewDesc(
			fqName("progress_percentage"),
			"Progress of each job in percent.",
			[]string{jobKindLabel},
			prometheus.Labels{},
		),
		itemsFailed: prometheus.NewDesc(
			fqName("items_failed"),
			"Items failed in the current or last run.",
			[]string{jobKindLabel},
			prometheus.Labels{},
		),
		totalRunTime: prometheus.NewDesc(
			fqName("run_time_seconds_total"),
			"Cumulative run time of each job.",
			[]string{jobKindLabel},
			prometheus.Labels{},
		),
		avgItemTime: prometheus.NewDesc(
			fqName("average_item_milliseconds"),
			"Average processing time per item.",
			[]string{jobKindLabel},
			prometheus.Labels{},
		),
	}
}

// RegisterJobCollector registers a collector exposing the persisted job
// records.
func RegisterJobCollector(jobs JobLister) error {
	return prometheus.Register(newJobStatsCollector(jobs))
}

func (c *jobStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.status
	ch <- c.progress
	ch <- c.itemsFailed
	ch <- c.totalRunTime
	ch <- c.avgItemTime
}

// Collect implements Collector.
func (c *jobStatsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	records, err := c.jobs.ListAll(ctx)
	if err != nil {
		zap.S().Named("job_collector").Errorf("failed to collect job statistics: %s", err)
		return
	}
	statuses := []model.JobStatus{model.JobStatusStopped, model.JobStatusRunning, model.JobStatusCompleted, model.JobStatusFailed}
	for _, r := range records {
		kind := string(r.JobKind)
		for _, s := range statuses {
			v := 0.0
			if r.Status == s {
				v = 1
			}
			ch <- prometheus.MustNewConstMetric(c.status, prometheus.GaugeValue, v, kind, string(s))
		}
		ch <- prometheus.MustNewConstMetric(c.progress, prometheus.GaugeValue, float64(r.Progress.Percentage), kind)
		ch <- prometheus.MustNewConstMetric(c.itemsFailed, prometheus.GaugeValue, float64(r.Statistics.ItemsFailed), kind)
		ch <- prometheus.MustNewConstMetric(c.totalRunTime, prometheus.CounterValue, float64(r.TotalRunTime)/1000, kind)
		ch <- prometheus.MustNewConstMetric(c.avgItemTime, prometheus.GaugeValue, r.Statistics.AverageTimePerItem, kind)
	}
}
