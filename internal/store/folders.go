// Package store owns the two persisted documents of the poll subsystem: the
// folder collection and the device vote ledger. Each is a single JSON
// document under one key, read and written whole; a per-key mutex guards
// every read-modify-write sequence so concurrent callers cannot silently
// overwrite each other's updates.
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

// FolderRepo persists the folder collection as one JSON array under
// kv.KeyFolders. It is the sole owner of that key.
type FolderRepo struct {
	store  kv.Store
	logger logger.Logger
	mu     sync.Mutex
}

// NewFolderRepo creates a folder repository over the given store.
func NewFolderRepo(store kv.Store, log logger.Logger) *FolderRepo {
	return &FolderRepo{store: store, logger: log}
}

// LoadAll reads the full folder collection. A missing document yields an
// empty collection. Present-but-unparseable data is logged and treated as
// empty rather than failing the caller.
func (r *FolderRepo) LoadAll(ctx context.Context) ([]domain.Folder, error) {
	raw, err := r.store.Get(ctx, kv.KeyFolders)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []domain.Folder{}, nil
		}
		return nil, err
	}

	var folders []domain.Folder
	if err := json.Unmarshal([]byte(raw), &folders); err != nil {
		corrupt := &domain.CorruptDataError{Key: kv.KeyFolders, Err: err}
		r.logger.Warn("folder collection is unreadable, recovering as empty",
			logger.String("key", kv.KeyFolders),
			logger.Error(corrupt))
		return []domain.Folder{}, nil
	}
	return folders, nil
}

// SaveAll overwrites the full folder collection. This is a whole-document
// write: callers must read-modify-write the entire collection.
func (r *FolderRepo) SaveAll(ctx context.Context, folders []domain.Folder) error {
	data, err := json.Marshal(folders)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, kv.KeyFolders, string(data))
}

// FindByID returns the folder with the given id from the collection.
func FindByID(folders []domain.Folder, id string) (*domain.Folder, bool) {
	for i := range folders {
		if folders[i].ID == id {
			return &folders[i], true
		}
	}
	return nil, false
}

// Update runs fn under the repository lock with the freshly loaded
// collection and persists whatever fn returns. fn returning an error aborts
// without writing.
func (r *FolderRepo) Update(ctx context.Context, fn func(folders []domain.Folder) ([]domain.Folder, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	folders, err := r.LoadAll(ctx)
	if err != nil {
		return err
	}
	updated, err := fn(folders)
	if err != nil {
		return err
	}
	return r.SaveAll(ctx, updated)
}
