package orchestrator

import "github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"

// IsRunning reports whether a live worker is registered for kind.
func (o *Orchestrator) IsRunning(kind model.JobKind) bool {
	return o.isRegistered(kind)
}
