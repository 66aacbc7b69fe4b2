package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wanderly-app/pollsvc/internal/domain"
	"github.com/wanderly-app/pollsvc/internal/httpserver/deps"
	"github.com/wanderly-app/pollsvc/internal/logger"
)

type submitVoteRequest struct {
	PlaceID string `json:"placeId"`
}

type submitVoteResponse struct {
	Message string `json:"message"`
}

// SubmitVote handles POST /api/folders/{id}/votes
func SubmitVote(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		folderID := chi.URLParam(r, "id")

		var req submitVoteRequest
		if err := parseJSONBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.PlaceID == "" {
			writeError(w, http.StatusBadRequest, "placeId is required")
			return
		}

		err := d.Engine.SubmitVote(r.Context(), folderID, req.PlaceID, d.Now())
		switch {
		case errors.Is(err, domain.ErrFolderNotFound):
			writeError(w, http.StatusNotFound, "folder not found")
			return
		case errors.Is(err, domain.ErrPollClosed):
			writeError(w, http.StatusConflict, "poll is not open for voting")
			return
		case errors.Is(err, domain.ErrAlreadyVoted):
			writeError(w, http.StatusConflict, "this device has already voted in this poll")
			return
		case errors.Is(err, domain.ErrInvalidPlace):
			writeError(w, http.StatusBadRequest, "place is not an option of this poll")
			return
		case err != nil:
			d.Logger.Error("failed to submit vote",
				logger.String("folder_id", folderID),
				logger.String("place_id", req.PlaceID),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "could not submit vote")
			return
		}

		writeJSON(w, http.StatusCreated, submitVoteResponse{
			Message: "vote recorded",
		})
	}
}

// Results handles GET /api/folders/{id}/results
func Results(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		folderID := chi.URLParam(r, "id")

		view, err := d.Engine.Get(r.Context(), folderID, d.Now())
		switch {
		case errors.Is(err, domain.ErrFolderNotFound):
			writeError(w, http.StatusNotFound, "folder not found")
			return
		case err != nil:
			d.Logger.Error("failed to load results",
				logger.String("folder_id", folderID),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "could not load results")
			return
		}

		writeJSON(w, http.StatusOK, struct {
			Status     domain.PollStatus            `json:"status"`
			Remaining  *domain.Remaining            `json:"remaining,omitempty"`
			TotalVotes int                          `json:"totalVotes"`
			Tally      map[string]domain.PlaceTally `json:"tally"`
		}{
			Status:     view.Status,
			Remaining:  view.Remaining,
			TotalVotes: view.TotalVotes,
			Tally:      view.Tally,
		})
	}
}
