package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/wotracker/internal/logging"
	"github.com/dmitrijs2005/wotracker/internal/server/repositories/repomanager"
)

// RevocationJanitor periodically drops revoked token ids whose tokens have
// expired on their own.
type RevocationJanitor struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	interval    time.Duration
	now         func() time.Time
	log         logging.Logger
}

// NewRevocationJanitor constructs a janitor sweeping every interval.
func NewRevocationJanitor(db *sql.DB, m repomanager.RepositoryManager, interval time.Duration, log logging.Logger) *RevocationJanitor {
	return &RevocationJanitor{db: db, repomanager: m, interval: interval, now: time.Now, log: log}
}

// Sweep deletes expired revocations once.
func (j *RevocationJanitor) Sweep(ctx context.Context) (int64, error) {
	n, err := j.repomanager.Revocations(j.db).DeleteExpired(ctx, j.now())
	if err != nil {
		j.log.Error(ctx, "revocation sweep failed", "error", err)
		return 0, err
	}
	if n > 0 {
		j.log.Debug(ctx, "revocations swept", "deleted", n)
	}
	return n, nil
}

// Run sweeps on every tick until ctx is done.
func (j *RevocationJanitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = j.Sweep(ctx)
		}
	}
}
