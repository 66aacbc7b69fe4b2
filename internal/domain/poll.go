package domain

import (
	"math"
	"time"
)

// PollStatus is the observable state of a folder poll at a given instant.
// The transition Open -> Ended is one-way and purely time-driven.
type PollStatus string

const (
	StatusOpen  PollStatus = "open"
	StatusEnded PollStatus = "ended"
)

// Remaining is the time left in an open poll, decomposed into whole days,
// whole hours (mod 24) and whole minutes (mod 60), truncating.
type Remaining struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// PlaceTally is the vote count for a place and its share of the total,
// rounded to the nearest whole percent.
type PlaceTally struct {
	Count   int `json:"count"`
	Percent int `json:"percent"`
}

// Status reports whether the poll is open or ended at the given instant.
// The poll window is [createdAt, endDate): a poll is Ended at exactly
// endDate.
func Status(f *Folder, now time.Time) PollStatus {
	if !now.Before(f.EndDate) {
		return StatusEnded
	}
	return StatusOpen
}

// RemainingTime returns the time left before the poll ends, or ok=false when
// the poll has already ended (never a negative duration).
func RemainingTime(f *Folder, now time.Time) (Remaining, bool) {
	if Status(f, now) == StatusEnded {
		return Remaining{}, false
	}
	diff := f.EndDate.Sub(now)
	return Remaining{
		Days:    int(diff / (24 * time.Hour)),
		Hours:   int(diff/time.Hour) % 24,
		Minutes: int(diff/time.Minute) % 60,
	}, true
}

// Tally computes per-place counts and percentages. With zero total votes
// every percent is 0.
func Tally(f *Folder) map[string]PlaceTally {
	total := f.TotalVotes()
	result := make(map[string]PlaceTally, len(f.Votes))
	for placeID, count := range f.Votes {
		percent := 0
		if total > 0 {
			percent = int(math.Round(float64(count) / float64(total) * 100))
		}
		result[placeID] = PlaceTally{Count: count, Percent: percent}
	}
	return result
}
