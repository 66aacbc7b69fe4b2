package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wanderly-app/pollsvc/internal/domain"
	"github.com/wanderly-app/pollsvc/internal/httpserver/deps"
	"github.com/wanderly-app/pollsvc/internal/logger"
	"github.com/wanderly-app/pollsvc/internal/poll"
)

type createFolderRequest struct {
	Name     string   `json:"name"`
	PlaceIDs []string `json:"placeIds"`
}

type folderResponse struct {
	poll.View
	ShareURL string `json:"shareUrl"`
}

func shareURL(publicURL, folderID string) string {
	return fmt.Sprintf("%s/vote/%s", publicURL, folderID)
}

// CreateFolder handles POST /api/folders
func CreateFolder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createFolderRequest
		if err := parseJSONBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		selected, err := d.Catalog.Resolve(req.PlaceIDs)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		folder, err := d.Engine.CreateFolder(r.Context(), req.Name, selected, d.Now())
		switch {
		case errors.Is(err, domain.ErrEmptyName), errors.Is(err, domain.ErrNoPlacesSelected):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			d.Logger.Error("failed to create folder", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "could not create folder")
			return
		}

		view, err := d.Engine.Get(r.Context(), folder.ID, d.Now())
		if err != nil {
			d.Logger.Error("failed to load created folder", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "could not load folder")
			return
		}

		writeJSON(w, http.StatusCreated, folderResponse{
			View:     view,
			ShareURL: shareURL(d.PublicURL, folder.ID),
		})
	}
}

// ListFolders handles GET /api/folders
func ListFolders(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := d.Engine.List(r.Context(), d.Now())
		if err != nil {
			d.Logger.Error("failed to list folders", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "could not list folders")
			return
		}

		result := make([]folderResponse, 0, len(views))
		for _, v := range views {
			result = append(result, folderResponse{
				View:     v,
				ShareURL: shareURL(d.PublicURL, v.ID),
			})
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// GetFolder handles GET /api/folders/{id}
func GetFolder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		folderID := chi.URLParam(r, "id")

		view, err := d.Engine.Get(r.Context(), folderID, d.Now())
		switch {
		case errors.Is(err, domain.ErrFolderNotFound):
			writeError(w, http.StatusNotFound, "folder not found")
			return
		case err != nil:
			d.Logger.Error("failed to load folder",
				logger.String("folder_id", folderID),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "could not load folder")
			return
		}

		writeJSON(w, http.StatusOK, folderResponse{
			View:     view,
			ShareURL: shareURL(d.PublicURL, view.ID),
		})
	}
}
