package handlers

import (
	"time"

	"github.com/filmboard/filmboard-api/pkg/db"
	"github.com/google/uuid"
)

// Store is the persistence surface the handlers run against. It is satisfied
// by queries.Store and mocked in tests.
type Store interface {
	CreateUser(user *db.User) (*db.User, error)
	FindUserByEmail(email string) (*db.User, error)
	FindUserByID(id uuid.UUID) (*db.User, error)
	UpdateUser(user *db.User) error
	UpdateUserRole(id uuid.UUID, role string) error
	DeleteUser(id uuid.UUID) error
	ListUsersWithCounts() ([]db.UserWithCount, error)

	CreateMovie(movie *db.Movie) (*db.Movie, error)
	FindMovieByID(id uuid.UUID) (*db.Movie, error)
	ListMovies(limit int) ([]db.Movie, error)
	UpdateMovie(movie *db.Movie) error
	DeleteMovie(id uuid.UUID) error
	ListGenres() ([]string, error)

	ListWatchlist(userID uuid.UUID) ([]db.WatchlistEntry, error)
	FindWatchlistEntry(userID, movieID uuid.UUID) (*db.WatchlistEntry, error)
	CreateWatchlistEntry(userID, movieID uuid.UUID) (*db.WatchlistEntry, error)
	MarkWatched(userID, movieID uuid.UUID) (*db.WatchlistEntry, error)
	DeleteWatchlistEntry(userID, movieID uuid.UUID) error

	Stats() (*db.Stats, error)
	MostWatchlisted(limit int) ([]db.MovieWithCount, error)
	UserGrowth() ([]db.MonthBucket, error)
	CountUsersUpdatedSince(t time.Time) (int, error)
	DailyActiveCounts(t time.Time) ([]db.DayBucket, error)
}

// Handlers bundles the route handlers around a Store.
type Handlers struct {
	store Store
}

func NewHandlers(store Store) *Handlers {
	return &Handlers{store: store}
}
