// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-cred-vault/internal/logger"
	"github.com/MKhiriev/go-cred-vault/internal/store"
)

// denyListJanitor periodically deletes revocation records for tokens that
// have already expired. An expired token is rejected by signature validation
// regardless of the denylist, so pruning only keeps the table small.
type denyListJanitor struct {
	denyList store.DenyListRepository
	interval time.Duration
	clock    func() time.Time

	logger *logger.Logger
}

func newDenyListJanitor(denyList store.DenyListRepository, interval time.Duration, logger *logger.Logger) *denyListJanitor {
	return &denyListJanitor{
		denyList: denyList,
		interval: interval,
		clock:    time.Now,
		logger:   logger,
	}
}

// Run starts the pruning loop in its own goroutine and returns immediately.
func (j *denyListJanitor) Run() {
	j.logger.Info().Dur("interval", j.interval).Msg("denylist janitor started")

	go func() {
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for range ticker.C {
			j.prune()
		}
	}()
}

func (j *denyListJanitor) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), j.interval)
	defer cancel()

	pruned, err := j.denyList.DeleteExpired(ctx, j.clock())
	if err != nil && errors.Is(err, store.ErrRetryable) {
		// transient failure (lost connection, deadlock rollback): one
		// immediate retry before waiting out the next tick
		j.logger.Warn().Err(err).Msg("denylist janitor: transient prune failure, retrying")
		pruned, err = j.denyList.DeleteExpired(ctx, j.clock())
	}
	if err != nil {
		j.logger.Error().Err(err).Msg("denylist janitor: prune failed")
		return
	}

	if pruned > 0 {
		j.logger.Info().Int64("pruned", pruned).Msg("denylist janitor: expired records removed")
	}
}
