package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/filmboard/filmboard-api/pkg/db"
	"github.com/filmboard/filmboard-api/pkg/db/queries"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(userID uuid.UUID, title, year string) db.WatchlistEntry {
	return db.WatchlistEntry{
		ID:      uuid.New(),
		UserID:  userID,
		MovieID: uuid.New(),
		AddedAt: time.Now().UTC(),
		Movie:   db.Movie{ID: uuid.New(), Title: title, ReleaseYear: year},
	}
}

func TestGetWatchlistRequiresUserID(t *testing.T) {
	router := newTestRouter(new(MockStore))
	w := performJSON(t, router, http.MethodGet, "/api/watchlist", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "User ID is required")
}

func TestGetWatchlistReturnsResolvedEntries(t *testing.T) {
	userID := uuid.New()
	entries := []db.WatchlistEntry{testEntry(userID, "Heat", "1995")}

	store := new(MockStore)
	store.On("ListWatchlist", userID).Return(entries, nil)

	router := newTestRouter(store)
	w := performJSON(t, router, http.MethodGet, "/api/watchlist?userId="+userID.String(), nil)

	require.Equal(t, http.StatusOK, w.Code)

	var got []db.WatchlistEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Heat", got[0].Movie.Title)
}

func TestAddToWatchlistMissingIDs(t *testing.T) {
	router := newTestRouter(new(MockStore))
	w := performJSON(t, router, http.MethodPost, "/api/watchlist", gin.H{"userId": uuid.New().String()})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddToWatchlistDuplicate(t *testing.T) {
	userID, movieID := uuid.New(), uuid.New()
	existing := testEntry(userID, "Heat", "1995")

	store := new(MockStore)
	store.On("FindWatchlistEntry", userID, movieID).Return(&existing, nil)

	router := newTestRouter(store)
	w := performJSON(t, router, http.MethodPost, "/api/watchlist", gin.H{
		"userId": userID.String(), "movieId": movieID.String(),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Movie already in watchlist")
}

// A second add that loses the race past the existence check still gets the
// duplicate rejection from the unique index.
func TestAddToWatchlistDuplicateRace(t *testing.T) {
	userID, movieID := uuid.New(), uuid.New()
	movie := &db.Movie{ID: movieID, Title: "Heat", ReleaseYear: "1995"}

	store := new(MockStore)
	store.On("FindWatchlistEntry", userID, movieID).Return(nil, nil)
	store.On("FindMovieByID", movieID).Return(movie, nil)
	store.On("CreateWatchlistEntry", userID, movieID).Return(nil, queries.ErrDuplicateEntry)

	router := newTestRouter(store)
	w := performJSON(t, router, http.MethodPost, "/api/watchlist", gin.H{
		"userId": userID.String(), "movieId": movieID.String(),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Movie already in watchlist")
}

func TestAddToWatchlistResolvesMovie(t *testing.T) {
	userID, movieID := uuid.New(), uuid.New()
	movie := &db.Movie{ID: movieID, Title: "Heat", ReleaseYear: "1995"}
	entry := &db.WatchlistEntry{ID: uuid.New(), UserID: userID, MovieID: movieID, AddedAt: time.Now().UTC()}

	store := new(MockStore)
	store.On("FindWatchlistEntry", userID, movieID).Return(nil, nil)
	store.On("FindMovieByID", movieID).Return(movie, nil)
	store.On("CreateWatchlistEntry", userID, movieID).Return(entry, nil)

	router := newTestRouter(store)
	w := performJSON(t, router, http.MethodPost, "/api/watchlist", gin.H{
		"userId": userID.String(), "movieId": movieID.String(),
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var got db.WatchlistEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Heat", got.Movie.Title)
	assert.False(t, got.Watched)
}

func TestRemoveFromWatchlistNotFound(t *testing.T) {
	userID, movieID := uuid.New(), uuid.New()

	store := new(MockStore)
	store.On("DeleteWatchlistEntry", userID, movieID).Return(sql.ErrNoRows)

	router := newTestRouter(store)
	w := performJSON(t, router, http.MethodDelete, "/api/watchlist/remove", gin.H{
		"userId": userID.String(), "movieId": movieID.String(),
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveFromWatchlist(t *testing.T) {
	userID, movieID := uuid.New(), uuid.New()

	store := new(MockStore)
	store.On("DeleteWatchlistEntry", userID, movieID).Return(nil)

	router := newTestRouter(store)
	w := performJSON(t, router, http.MethodDelete, "/api/watchlist/remove", gin.H{
		"userId": userID.String(), "movieId": movieID.String(),
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "removed from watchlist")
}

func TestMarkWatchedSetsFlagAndTimestamp(t *testing.T) {
	userID, movieID := uuid.New(), uuid.New()
	watchedAt := time.Now().UTC()
	movie := &db.Movie{ID: movieID, Title: "Heat", ReleaseYear: "1995"}
	entry := &db.WatchlistEntry{
		ID: uuid.New(), UserID: userID, MovieID: movieID,
		Watched: true, WatchedAt: &watchedAt,
	}

	store := new(MockStore)
	store.On("MarkWatched", userID, movieID).Return(entry, nil)
	store.On("FindMovieByID", movieID).Return(movie, nil)

	router := newTestRouter(store)
	w := performJSON(t, router, http.MethodPatch, "/api/watchlist/watched", gin.H{
		"userId": userID.String(), "movieId": movieID.String(),
	})

	require.Equal(t, http.StatusOK, w.Code)

	var got db.WatchlistEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.Watched)
	require.NotNil(t, got.WatchedAt)
	assert.Equal(t, "Heat", got.Movie.Title)
}

func TestMarkWatchedNotFound(t *testing.T) {
	userID, movieID := uuid.New(), uuid.New()

	store := new(MockStore)
	store.On("MarkWatched", userID, movieID).Return(nil, nil)

	router := newTestRouter(store)
	w := performJSON(t, router, http.MethodPatch, "/api/watchlist/watched", gin.H{
		"userId": userID.String(), "movieId": movieID.String(),
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchWatchlistFiltersByTitleOrYear(t *testing.T) {
	userID := uuid.New()
	entries := []db.WatchlistEntry{
		testEntry(userID, "Heat", "1995"),
		testEntry(userID, "The Matrix", "1999"),
		testEntry(userID, "Alien", "1979"),
	}

	store := new(MockStore)
	store.On("ListWatchlist", userID).Return(entries, nil)

	router := newTestRouter(store)
	w := performJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/watchlist/search?userId=%s&query=19", userID.String()), nil)

	require.Equal(t, http.StatusOK, w.Code)

	var got []db.WatchlistEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 3)

	w = performJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/watchlist/search?userId=%s&query=matrix", userID.String()), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "The Matrix", got[0].Movie.Title)
}

func TestFilterWatchlist(t *testing.T) {
	entries := []db.WatchlistEntry{
		testEntry(uuid.New(), "Heat", "1995"),
		testEntry(uuid.New(), "The Matrix", "1999"),
	}

	assert.Len(t, filterWatchlist(entries, ""), 2)
	assert.Len(t, filterWatchlist(entries, "HEAT"), 1)
	assert.Len(t, filterWatchlist(entries, "1999"), 1)
	assert.Empty(t, filterWatchlist(entries, "dune"))
	assert.NotNil(t, filterWatchlist(nil, "x"))
}
