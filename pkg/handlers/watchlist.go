package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/filmboard/filmboard-api/pkg/db"
	"github.com/filmboard/filmboard-api/pkg/db/queries"
	"github.com/filmboard/filmboard-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type WatchlistRequest struct {
	UserID  string `json:"userId" binding:"required"`
	MovieID string `json:"movieId" binding:"required"`
}

func (r *WatchlistRequest) parse() (userID, movieID uuid.UUID, err error) {
	if userID, err = uuid.Parse(r.UserID); err != nil {
		return
	}
	movieID, err = uuid.Parse(r.MovieID)
	return
}

// userIDFromQuery reads the ?userId parameter. A missing value is an
// authorization failure, not a validation one: the caller never identified
// itself.
func userIDFromQuery(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Query("userId")
	if raw == "" {
		utils.ResponseWithError(c, http.StatusUnauthorized, "User ID is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.ResponseWithError(c, http.StatusBadRequest, "Invalid user ID")
		return uuid.Nil, false
	}
	return id, true
}

// GetWatchlist returns the caller's entries with movies resolved, most
// recently added first.
func (h *Handlers) GetWatchlist(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	entries, err := h.store.ListWatchlist(userID)
	if err != nil {
		log.Errorf("GetWatchlist: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error fetching watchlist")
		return
	}
	if entries == nil {
		entries = []db.WatchlistEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// AddToWatchlist creates an entry for a (user, movie) pair. The pair is
// unique; a duplicate add is rejected.
func (h *Handlers) AddToWatchlist(c *gin.Context) {
	var req WatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debugf("AddToWatchlist: Invalid request body: %v", err)
		utils.ResponseWithError(c, http.StatusBadRequest, "userId and movieId are required")
		return
	}
	userID, movieID, err := req.parse()
	if err != nil {
		utils.ResponseWithError(c, http.StatusBadRequest, "Invalid userId or movieId")
		return
	}

	existing, err := h.store.FindWatchlistEntry(userID, movieID)
	if err != nil {
		log.Errorf("AddToWatchlist: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error adding to watchlist")
		return
	}
	if existing != nil {
		utils.ResponseWithError(c, http.StatusBadRequest, "Movie already in watchlist")
		return
	}

	movie, err := h.store.FindMovieByID(movieID)
	if err != nil {
		log.Errorf("AddToWatchlist: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error adding to watchlist")
		return
	}
	if movie == nil {
		utils.ResponseWithError(c, http.StatusNotFound, "Movie not found")
		return
	}

	entry, err := h.store.CreateWatchlistEntry(userID, movieID)
	if err != nil {
		// The unique (user, movie) index catches the add that lost a race
		// with an identical concurrent request.
		if errors.Is(err, queries.ErrDuplicateEntry) {
			utils.ResponseWithError(c, http.StatusBadRequest, "Movie already in watchlist")
			return
		}
		log.Errorf("AddToWatchlist: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error adding to watchlist")
		return
	}

	entry.Movie = *movie
	c.JSON(http.StatusCreated, entry)
}

// RemoveFromWatchlist deletes the entry for a (user, movie) pair.
func (h *Handlers) RemoveFromWatchlist(c *gin.Context) {
	var req WatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debugf("RemoveFromWatchlist: Invalid request body: %v", err)
		utils.ResponseWithError(c, http.StatusBadRequest, "userId and movieId are required")
		return
	}
	userID, movieID, err := req.parse()
	if err != nil {
		utils.ResponseWithError(c, http.StatusBadRequest, "Invalid userId or movieId")
		return
	}

	if err := h.store.DeleteWatchlistEntry(userID, movieID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.ResponseWithError(c, http.StatusNotFound, "Movie not found in watchlist")
			return
		}
		log.Errorf("RemoveFromWatchlist: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error removing from watchlist")
		return
	}
	utils.ResponseWithMessage(c, http.StatusOK, "Movie removed from watchlist")
}

// MarkWatched flags an entry as watched and stamps the time. The transition
// is one-directional; there is no server-side way back to unwatched.
func (h *Handlers) MarkWatched(c *gin.Context) {
	var req WatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debugf("MarkWatched: Invalid request body: %v", err)
		utils.ResponseWithError(c, http.StatusBadRequest, "userId and movieId are required")
		return
	}
	userID, movieID, err := req.parse()
	if err != nil {
		utils.ResponseWithError(c, http.StatusBadRequest, "Invalid userId or movieId")
		return
	}

	entry, err := h.store.MarkWatched(userID, movieID)
	if err != nil {
		log.Errorf("MarkWatched: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error updating watchlist")
		return
	}
	if entry == nil {
		utils.ResponseWithError(c, http.StatusNotFound, "Movie not found in watchlist")
		return
	}

	movie, err := h.store.FindMovieByID(movieID)
	if err != nil {
		log.Errorf("MarkWatched: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error updating watchlist")
		return
	}
	if movie != nil {
		entry.Movie = *movie
	}
	c.JSON(http.StatusOK, entry)
}

// SearchWatchlist filters the caller's resolved watchlist in memory by a
// case-insensitive substring match on title or release year.
func (h *Handlers) SearchWatchlist(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	entries, err := h.store.ListWatchlist(userID)
	if err != nil {
		log.Errorf("SearchWatchlist: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error searching watchlist")
		return
	}

	c.JSON(http.StatusOK, filterWatchlist(entries, c.Query("query")))
}

func filterWatchlist(entries []db.WatchlistEntry, query string) []db.WatchlistEntry {
	filtered := []db.WatchlistEntry{}
	query = strings.ToLower(strings.TrimSpace(query))
	for _, entry := range entries {
		if query == "" ||
			strings.Contains(strings.ToLower(entry.Movie.Title), query) ||
			strings.Contains(strings.ToLower(entry.Movie.ReleaseYear), query) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
