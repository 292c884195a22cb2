package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/filmboard/filmboard-api/pkg/db"
	"github.com/filmboard/filmboard-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	defaultMostWatchlisted = 4
	topGenres              = 5
)

type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

type GrowthPoint struct {
	Label string `json:"label"` // e.g. "Jan 2026"
	Count int    `json:"count"`
}

type ActivityResponse struct {
	Last24Hours int           `json:"last24Hours"`
	Last7Days   int           `json:"last7Days"`
	Last30Days  int           `json:"last30Days"`
	Daily       []GrowthPoint `json:"daily"` // one point per day, last 7 days
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// GetStats returns the dashboard summary counts.
func (h *Handlers) GetStats(c *gin.Context) {
	stats, err := h.store.Stats()
	if err != nil {
		log.Errorf("GetStats: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error fetching stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListUsers returns every user (password excluded by serialization) with its
// watchlist entry count, newest first.
func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsersWithCounts()
	if err != nil {
		log.Errorf("ListUsers: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error fetching users")
		return
	}
	if users == nil {
		users = []db.UserWithCount{}
	}
	c.JSON(http.StatusOK, users)
}

// MostWatchlisted returns the movies appearing in the most watchlists.
func (h *Handlers) MostWatchlisted(c *gin.Context) {
	limit := defaultMostWatchlisted
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	movies, err := h.store.MostWatchlisted(limit)
	if err != nil {
		log.Errorf("MostWatchlisted: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error fetching most-watchlisted movies")
		return
	}
	if movies == nil {
		movies = []db.MovieWithCount{}
	}
	c.JSON(http.StatusOK, movies)
}

// GetGenreStats tallies genre tokens across the catalog and returns the top
// five by occurrence.
func (h *Handlers) GetGenreStats(c *gin.Context) {
	genres, err := h.store.ListGenres()
	if err != nil {
		log.Errorf("GetGenreStats: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error fetching genre stats")
		return
	}
	c.JSON(http.StatusOK, tallyGenres(genres, topGenres))
}

// tallyGenres splits comma-separated genre strings, trims the tokens and
// returns the top n tokens by count, descending. Ties break alphabetically
// so the output is stable.
func tallyGenres(genres []string, n int) []GenreCount {
	counts := make(map[string]int)
	for _, raw := range genres {
		for _, token := range strings.Split(raw, ",") {
			if token = strings.TrimSpace(token); token != "" {
				counts[token]++
			}
		}
	}

	tally := make([]GenreCount, 0, len(counts))
	for genre, count := range counts {
		tally = append(tally, GenreCount{Genre: genre, Count: count})
	}
	sort.Slice(tally, func(i, j int) bool {
		if tally[i].Count != tally[j].Count {
			return tally[i].Count > tally[j].Count
		}
		return tally[i].Genre < tally[j].Genre
	})

	if len(tally) > n {
		tally = tally[:n]
	}
	return tally
}

// GetUserGrowth returns monthly signup counts in chronological order.
func (h *Handlers) GetUserGrowth(c *gin.Context) {
	buckets, err := h.store.UserGrowth()
	if err != nil {
		log.Errorf("GetUserGrowth: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error fetching user growth")
		return
	}

	points := make([]GrowthPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, GrowthPoint{Label: monthLabel(b.Year, b.Month), Count: b.Count})
	}
	c.JSON(http.StatusOK, points)
}

func monthLabel(year, month int) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

// GetUserActivity reports users active in the last 24 hours, 7 days and 30
// days, using last-update time as the activity proxy, plus a per-day series
// for the last 7 days.
func (h *Handlers) GetUserActivity(c *gin.Context) {
	now := time.Now().UTC()

	resp := ActivityResponse{Daily: []GrowthPoint{}}
	windows := []struct {
		since time.Time
		dest  *int
	}{
		{now.Add(-24 * time.Hour), &resp.Last24Hours},
		{now.AddDate(0, 0, -7), &resp.Last7Days},
		{now.AddDate(0, 0, -30), &resp.Last30Days},
	}
	for _, w := range windows {
		count, err := h.store.CountUsersUpdatedSince(w.since)
		if err != nil {
			log.Errorf("GetUserActivity: %v", err)
			utils.ResponseWithError(c, http.StatusInternalServerError, "Error fetching user activity")
			return
		}
		*w.dest = count
	}

	daily, err := h.store.DailyActiveCounts(now.AddDate(0, 0, -7))
	if err != nil {
		log.Errorf("GetUserActivity: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error fetching user activity")
		return
	}
	for _, b := range daily {
		resp.Daily = append(resp.Daily, GrowthPoint{Label: b.Day.Format("Jan 2"), Count: b.Count})
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateUserRole sets a user's role to exactly "user" or "admin".
func (h *Handlers) UpdateUserRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ResponseWithError(c, http.StatusNotFound, "User not found")
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debugf("UpdateUserRole: Invalid request body: %v", err)
		utils.ResponseWithError(c, http.StatusBadRequest, "role is required")
		return
	}
	if req.Role != db.RoleUser && req.Role != db.RoleAdmin {
		utils.ResponseWithError(c, http.StatusBadRequest, "role must be either 'user' or 'admin'")
		return
	}

	if err := h.store.UpdateUserRole(id, req.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.ResponseWithError(c, http.StatusNotFound, "User not found")
			return
		}
		log.Errorf("UpdateUserRole: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error updating user role")
		return
	}
	utils.ResponseWithMessage(c, http.StatusOK, "User role updated successfully")
}

// DeleteUser removes a user; the user's watchlist entries cascade away.
func (h *Handlers) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ResponseWithError(c, http.StatusNotFound, "User not found")
		return
	}

	if err := h.store.DeleteUser(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.ResponseWithError(c, http.StatusNotFound, "User not found")
			return
		}
		log.Errorf("DeleteUser: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error deleting user")
		return
	}
	utils.ResponseWithMessage(c, http.StatusOK, "User deleted successfully")
}
