package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/wanderly-app/pollsvc/internal/domain"
	"github.com/wanderly-app/pollsvc/internal/kv"
	"github.com/wanderly-app/pollsvc/internal/logger"
)

// VoteLedger records which folders this deployment has already voted on, as
// a JSON array of folder ids under kv.KeyVotedFolders. The set grows
// monotonically; entries are only removed when the retention janitor deletes
// the folder itself. It is a weak anti-double-voting control, not a security
// boundary.
type VoteLedger struct {
	store  kv.Store
	logger logger.Logger
	mu     sync.Mutex
}

// NewVoteLedger creates a vote ledger over the given store.
func NewVoteLedger(store kv.Store, log logger.Logger) *VoteLedger {
	return &VoteLedger{store: store, logger: log}
}

// HasVoted reports whether a vote has already been recorded for the folder.
func (l *VoteLedger) HasVoted(ctx context.Context, folderID string) (bool, error) {
	ids, err := l.load(ctx)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == folderID {
			return true, nil
		}
	}
	return false, nil
}

// RecordVote adds the folder id to the ledger. Recording the same id twice
// has no additional effect.
func (l *VoteLedger) RecordVote(ctx context.Context, folderID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids, err := l.load(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == folderID {
			return nil
		}
	}
	return l.save(ctx, append(ids, folderID))
}

// Prune removes every ledger entry whose folder id is not in keep. Used by
// the retention janitor after deleting expired folders.
func (l *VoteLedger) Prune(ctx context.Context, keep map[string]bool) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids, err := l.load(ctx)
	if err != nil {
		return 0, err
	}
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if keep[id] {
			kept = append(kept, id)
		}
	}
	removed := len(ids) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, l.save(ctx, kept)
}

func (l *VoteLedger) load(ctx context.Context) ([]string, error) {
	raw, err := l.store.Get(ctx, kv.KeyVotedFolders)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		corrupt := &domain.CorruptDataError{Key: kv.KeyVotedFolders, Err: err}
		l.logger.Warn("vote ledger is unreadable, recovering as empty",
			logger.String("key", kv.KeyVotedFolders),
			logger.Error(corrupt))
		return []string{}, nil
	}
	return ids, nil
}

func (l *VoteLedger) save(ctx context.Context, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return l.store.Set(ctx, kv.KeyVotedFolders, string(data))
}
