package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/filmboard/filmboard-api/pkg/db"
	"github.com/filmboard/filmboard-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type CreateMovieRequest struct {
	Title       string   `json:"title" binding:"required"`
	Director    string   `json:"director" binding:"required"`
	ReleaseYear string   `json:"releaseYear" binding:"required"`
	Genre       string   `json:"genre" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Runtime     *int     `json:"runtime"`
	Rating      *float64 `json:"rating"`
	Poster      *string  `json:"poster"`
	TrailerURL  *string  `json:"trailerUrl"`
	MainCast    *string  `json:"mainCast"`
	Source      *string  `json:"source"`
}

// UpdateMovieRequest carries a partial update; nil fields are left untouched.
type UpdateMovieRequest struct {
	Title       *string  `json:"title"`
	Director    *string  `json:"director"`
	ReleaseYear *string  `json:"releaseYear"`
	Genre       *string  `json:"genre"`
	Description *string  `json:"description"`
	Runtime     *int     `json:"runtime"`
	Rating      *float64 `json:"rating"`
	Poster      *string  `json:"poster"`
	TrailerURL  *string  `json:"trailerUrl"`
	MainCast    *string  `json:"mainCast"`
	Source      *string  `json:"source"`
}

// ListMovies returns the catalog newest-first, truncated when ?limit=N is a
// positive integer. Search and filtering happen client-side over this list.
func (h *Handlers) ListMovies(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	movies, err := h.store.ListMovies(limit)
	if err != nil {
		log.Errorf("ListMovies: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error fetching movies")
		return
	}
	if movies == nil {
		movies = []db.Movie{}
	}
	c.JSON(http.StatusOK, movies)
}

// GetMovie returns one movie by ID.
func (h *Handlers) GetMovie(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ResponseWithError(c, http.StatusNotFound, "Movie not found")
		return
	}

	movie, err := h.store.FindMovieByID(id)
	if err != nil {
		log.Errorf("GetMovie: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error fetching movie")
		return
	}
	if movie == nil {
		utils.ResponseWithError(c, http.StatusNotFound, "Movie not found")
		return
	}
	c.JSON(http.StatusOK, movie)
}

// CreateMovie persists a new catalog entry from the admin form.
func (h *Handlers) CreateMovie(c *gin.Context) {
	var req CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debugf("CreateMovie: Invalid request body: %v", err)
		utils.ResponseWithError(c, http.StatusBadRequest, "title, director, releaseYear, genre and description are required")
		return
	}

	movie := &db.Movie{
		Title:       req.Title,
		Director:    req.Director,
		ReleaseYear: req.ReleaseYear,
		Genre:       req.Genre,
		Description: req.Description,
		Runtime:     req.Runtime,
		Rating:      req.Rating,
		Poster:      req.Poster,
		TrailerURL:  req.TrailerURL,
		MainCast:    req.MainCast,
		Source:      req.Source,
	}

	created, err := h.store.CreateMovie(movie)
	if err != nil {
		log.Errorf("CreateMovie: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error creating movie")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateMovie applies a partial update to an existing movie.
func (h *Handlers) UpdateMovie(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ResponseWithError(c, http.StatusNotFound, "Movie not found")
		return
	}

	var req UpdateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debugf("UpdateMovie: Invalid request body: %v", err)
		utils.ResponseWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	movie, err := h.store.FindMovieByID(id)
	if err != nil {
		log.Errorf("UpdateMovie: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error updating movie")
		return
	}
	if movie == nil {
		utils.ResponseWithError(c, http.StatusNotFound, "Movie not found")
		return
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Director != nil {
		movie.Director = *req.Director
	}
	if req.ReleaseYear != nil {
		movie.ReleaseYear = *req.ReleaseYear
	}
	if req.Genre != nil {
		movie.Genre = *req.Genre
	}
	if req.Description != nil {
		movie.Description = *req.Description
	}
	if req.Runtime != nil {
		movie.Runtime = req.Runtime
	}
	if req.Rating != nil {
		movie.Rating = req.Rating
	}
	if req.Poster != nil {
		movie.Poster = req.Poster
	}
	if req.TrailerURL != nil {
		movie.TrailerURL = req.TrailerURL
	}
	if req.MainCast != nil {
		movie.MainCast = req.MainCast
	}
	if req.Source != nil {
		movie.Source = req.Source
	}

	if err := h.store.UpdateMovie(movie); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.ResponseWithError(c, http.StatusNotFound, "Movie not found")
			return
		}
		log.Errorf("UpdateMovie: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error updating movie")
		return
	}
	c.JSON(http.StatusOK, movie)
}

// DeleteMovie removes a movie; its watchlist entries cascade away with it.
func (h *Handlers) DeleteMovie(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ResponseWithError(c, http.StatusNotFound, "Movie not found")
		return
	}

	if err := h.store.DeleteMovie(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.ResponseWithError(c, http.StatusNotFound, "Movie not found")
			return
		}
		log.Errorf("DeleteMovie: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error deleting movie")
		return
	}
	utils.ResponseWithMessage(c, http.StatusOK, "Movie deleted successfully")
}
