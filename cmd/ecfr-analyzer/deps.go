package main

import (
	"errors"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/archive"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/config"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/ecfr"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/llm"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/worker"
	"go.uber.org/zap"
)

// newWorkerDeps wires the collaborators a worker session may need. A
// missing LLM key only disables the section analysis job.
func newWorkerDeps(cfg *config.Config, s store.Store) (worker.Deps, error) {
	deps := worker.Deps{
		Config:   cfg,
		Store:    s,
		Versions: ecfr.NewClient(cfg),
	}

	client, err := llm.NewOpenAIClient(cfg)
	switch {
	case err == nil:
		deps.Analyzer = llm.NewSectionAnalyzer(client, cfg)
	case errors.Is(err, llm.ErrAPIKeyNotSet):
		zap.S().Named("worker").Warn("LLM API key not set, section analysis is disabled")
	default:
		return worker.Deps{}, err
	}

	archiver, err := archive.New(cfg)
	if err != nil {
		return worker.Deps{}, err
	}
	deps.Archive = archiver

	return deps, nil
}
