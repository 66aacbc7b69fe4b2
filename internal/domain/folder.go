package domain

import (
	"fmt"
	"time"
)

// PollDuration is the fixed length of every folder poll. Not configurable
// per-folder: endDate is always exactly createdAt + PollDuration.
const PollDuration = 5 * 24 * time.Hour

// Place is a display snapshot of a catalog place, copied into the folder at
// creation time so later catalog edits do not alter historical poll options.
type Place struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
	City  string `json:"city,omitempty"`
}

// Folder is a named collection of candidate places together with a
// time-boxed poll over them. Apart from vote increments it is never
// structurally mutated after creation.
type Folder struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Places    []Place        `json:"places"`
	CreatedAt time.Time      `json:"createdAt"`
	EndDate   time.Time      `json:"endDate"`
	Votes     map[string]int `json:"votes"`
}

// TotalVotes returns the sum of all vote counts in the folder.
func (f *Folder) TotalVotes() int {
	total := 0
	for _, n := range f.Votes {
		total += n
	}
	return total
}

// HasPlace reports whether the given place id is a poll option of the folder.
func (f *Folder) HasPlace(placeID string) bool {
	_, ok := f.Votes[placeID]
	return ok
}

// Validate checks the structural invariants of a folder: non-empty id and
// name, votes keys exactly matching the place ids, non-negative counts, and
// endDate exactly PollDuration after createdAt.
func (f *Folder) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("folder has empty id")
	}
	if f.Name == "" {
		return fmt.Errorf("folder %s has empty name", f.ID)
	}
	if len(f.Places) == 0 {
		return fmt.Errorf("folder %s has no places", f.ID)
	}
	if len(f.Votes) != len(f.Places) {
		return fmt.Errorf("folder %s has %d vote entries for %d places", f.ID, len(f.Votes), len(f.Places))
	}
	for _, p := range f.Places {
		count, ok := f.Votes[p.ID]
		if !ok {
			return fmt.Errorf("folder %s is missing a vote entry for place %s", f.ID, p.ID)
		}
		if count < 0 {
			return fmt.Errorf("folder %s has a negative vote count for place %s", f.ID, p.ID)
		}
	}
	if !f.EndDate.Equal(f.CreatedAt.Add(PollDuration)) {
		return fmt.Errorf("folder %s endDate is not createdAt + %v", f.ID, PollDuration)
	}
	return nil
}
