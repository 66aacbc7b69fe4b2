package poll

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wanderly-app/pollsvc/internal/domain"
	"github.com/wanderly-app/pollsvc/internal/logger"
)

// CreateFolder builds a new folder from a trimmed name and a snapshot of the
// selected places, seeds every vote counter to zero, opens the poll window
// at now with the fixed duration, and appends the folder to the persisted
// collection.
func (e *Engine) CreateFolder(ctx context.Context, name string, places []domain.Place, now time.Time) (domain.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Folder{}, domain.ErrEmptyName
	}
	if len(places) == 0 {
		return domain.Folder{}, domain.ErrNoPlacesSelected
	}

	votes := make(map[string]int, len(places))
	for _, p := range places {
		votes[p.ID] = 0
	}

	folder := domain.Folder{
		ID:        uuid.NewString(),
		Name:      name,
		Places:    append([]domain.Place(nil), places...),
		CreatedAt: now,
		EndDate:   now.Add(domain.PollDuration),
		Votes:     votes,
	}

	err := e.repo.Update(ctx, func(folders []domain.Folder) ([]domain.Folder, error) {
		return append(folders, folder), nil
	})
	if err != nil {
		return domain.Folder{}, err
	}

	e.logger.Info("folder created",
		logger.String("folder_id", folder.ID),
		logger.String("name", folder.Name),
		logger.Int("places", len(folder.Places)),
		logger.Time("end_date", folder.EndDate))
	return folder, nil
}
