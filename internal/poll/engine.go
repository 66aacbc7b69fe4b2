// Package poll mediates every read and write of the folder poll lifecycle:
// folder creation, vote submission, and derived poll state.
package poll

import (
	"context"
	"sync"
	"time"

	"github.com/wanderly-app/pollsvc/internal/domain"
	"github.com/wanderly-app/pollsvc/internal/logger"
	"github.com/wanderly-app/pollsvc/internal/store"
)

// Engine computes derived poll state and admits or rejects vote attempts.
// Vote submissions are serialized through a single mutex so a rapid
// double-submit cannot interleave two read-modify-write sequences.
type Engine struct {
	repo   *store.FolderRepo
	ledger *store.VoteLedger
	logger logger.Logger
	submit sync.Mutex
}

// NewEngine creates a poll engine over the given repository and ledger.
func NewEngine(repo *store.FolderRepo, ledger *store.VoteLedger, log logger.Logger) *Engine {
	return &Engine{repo: repo, ledger: ledger, logger: log}
}

// View is a folder together with its derived poll state at a given instant.
type View struct {
	domain.Folder
	Status     domain.PollStatus            `json:"status"`
	Remaining  *domain.Remaining            `json:"remaining,omitempty"`
	Tally      map[string]domain.PlaceTally `json:"tally"`
	TotalVotes int                          `json:"totalVotes"`
}

func newView(f domain.Folder, now time.Time) View {
	v := View{
		Folder:     f,
		Status:     domain.Status(&f, now),
		Tally:      domain.Tally(&f),
		TotalVotes: f.TotalVotes(),
	}
	if remaining, ok := domain.RemainingTime(&f, now); ok {
		v.Remaining = &remaining
	}
	return v
}

// List returns all folders with their derived state.
func (e *Engine) List(ctx context.Context, now time.Time) ([]View, error) {
	folders, err := e.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(folders))
	for _, f := range folders {
		views = append(views, newView(f, now))
	}
	return views, nil
}

// Get returns one folder with its derived state.
func (e *Engine) Get(ctx context.Context, folderID string, now time.Time) (View, error) {
	folders, err := e.repo.LoadAll(ctx)
	if err != nil {
		return View{}, err
	}
	folder, ok := store.FindByID(folders, folderID)
	if !ok {
		return View{}, domain.ErrFolderNotFound
	}
	return newView(*folder, now), nil
}

// SubmitVote admits a vote for a place in a folder's poll. It rejects votes
// on unknown folders, ended polls, folders this deployment already voted on,
// and place ids that are not options of the poll. On success the tally is
// persisted first and the ledger entry recorded second; the two writes are
// not atomic with respect to each other.
func (e *Engine) SubmitVote(ctx context.Context, folderID, placeID string, now time.Time) error {
	e.submit.Lock()
	defer e.submit.Unlock()

	err := e.repo.Update(ctx, func(folders []domain.Folder) ([]domain.Folder, error) {
		folder, ok := store.FindByID(folders, folderID)
		if !ok {
			return nil, domain.ErrFolderNotFound
		}
		if domain.Status(folder, now) == domain.StatusEnded {
			return nil, domain.ErrPollClosed
		}
		voted, err := e.ledger.HasVoted(ctx, folderID)
		if err != nil {
			return nil, err
		}
		if voted {
			return nil, domain.ErrAlreadyVoted
		}
		if !folder.HasPlace(placeID) {
			return nil, domain.ErrInvalidPlace
		}
		folder.Votes[placeID]++
		return folders, nil
	})
	if err != nil {
		return err
	}

	// Ledger write follows the tally write. A crash between the two leaves
	// the vote counted but the deployment able to vote again.
	if err := e.ledger.RecordVote(ctx, folderID); err != nil {
		return err
	}

	e.logger.Info("vote recorded",
		logger.String("folder_id", folderID),
		logger.String("place_id", placeID))
	return nil
}
