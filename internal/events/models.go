package events

import (
	"time"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
)

// JobEvent is published on every status transition of a job.
type JobEvent struct {
	JobKind  model.JobKind   `json:"job_kind"`
	Status   model.JobStatus `json:"status"`
	Progress model.Progress  `json:"progress"`
	Error    string          `json:"error,omitempty"`
	Time     time.Time       `json:"time"`
}
