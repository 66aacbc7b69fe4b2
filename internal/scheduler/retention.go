package scheduler

import (
	"context"
	"time"

	"github.com/wanderly-app/pollsvc/internal/domain"
	"github.com/wanderly-app/pollsvc/internal/logger"
	"github.com/wanderly-app/pollsvc/internal/store"
)

const (
	// DefaultRetentionThreshold is how long ended polls are kept before
	// deletion (30 days after the poll window closes)
	DefaultRetentionThreshold = 30 * 24 * time.Hour
)

// RetentionJanitor deletes folders whose poll ended longer ago than the
// threshold, then drops their ledger entries. Ledger entries for live
// folders are never touched.
type RetentionJanitor struct {
	repo      *store.FolderRepo
	ledger    *store.VoteLedger
	logger    logger.Logger
	interval  time.Duration
	threshold time.Duration
	stopCh    chan struct{}
}

// NewRetentionJanitor creates a new retention janitor
func NewRetentionJanitor(
	repo *store.FolderRepo,
	ledger *store.VoteLedger,
	log logger.Logger,
	interval time.Duration,
	threshold time.Duration,
) *RetentionJanitor {
	if threshold == 0 {
		threshold = DefaultRetentionThreshold
	}

	return &RetentionJanitor{
		repo:      repo,
		ledger:    ledger,
		logger:    log,
		interval:  interval,
		threshold: threshold,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic retention sweep
func (rj *RetentionJanitor) Start(ctx context.Context) error {
	// Run immediately on start
	if err := rj.Sweep(ctx); err != nil {
		rj.logger.Warn("initial retention sweep failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(rj.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := rj.Sweep(ctx); err != nil {
					rj.logger.Error("retention sweep failed",
						logger.Error(err))
				}
			case <-rj.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the janitor
func (rj *RetentionJanitor) Stop() {
	close(rj.stopCh)
}

// Sweep removes folders whose poll ended more than threshold ago and prunes
// their ids from the vote ledger.
func (rj *RetentionJanitor) Sweep(ctx context.Context) error {
	now := time.Now()
	cutoff := now.Add(-rj.threshold)
	deleted := 0
	keep := make(map[string]bool)

	err := rj.repo.Update(ctx, func(folders []domain.Folder) ([]domain.Folder, error) {
		kept := make([]domain.Folder, 0, len(folders))
		for _, f := range folders {
			if f.EndDate.Before(cutoff) {
				deleted++
				continue
			}
			keep[f.ID] = true
			kept = append(kept, f)
		}
		return kept, nil
	})
	if err != nil {
		return err
	}

	if deleted == 0 {
		rj.logger.Debug("no folders to expire")
		return nil
	}

	pruned, err := rj.ledger.Prune(ctx, keep)
	if err != nil {
		return err
	}

	rj.logger.Info("retention sweep completed",
		logger.Int("folders_deleted", deleted),
		logger.Int("ledger_entries_pruned", pruned))
	return nil
}
