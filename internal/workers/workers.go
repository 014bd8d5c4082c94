// Package workers hosts background processes that run alongside the HTTP
// server, such as the denylist janitor.
package workers

import (
	"github.com/MKhiriev/go-cred-vault/internal/config"
	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/store"
)

// Workers aggregates all background workers of the application.
type Workers struct {
	workers []Worker
}

// NewWorkers assembles the background workers from the given repositories
// and configuration.
func NewWorkers(repositories *store.Repositories, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			newDenyListJanitor(repositories.DenyListRepository, cfg.PruneInterval, logger),
		},
	}
}

// Run starts every registered worker.
func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
