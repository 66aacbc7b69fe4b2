// Package kv defines the string-keyed, string-valued persistence capability
// the repositories are built on. Implementations only support whole-value
// get/set/delete; there are no transactional guarantees across keys.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists under the key.
var ErrNotFound = errors.New("kv: key not found")

// Persisted document keys. The folder collection and the vote ledger are
// each a single shared document; only the owning repository may write to
// its key.
const (
	KeyFolders      = "folders"
	KeyVotedFolders = "votedFolders"
)

// Store is an asynchronous string-keyed store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
