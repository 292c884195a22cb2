package handlers

import (
	"time"

	"github.com/filmboard/filmboard-api/pkg/db"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockStore is a testify mock of the Store interface used by the handlers.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateUser(user *db.User) (*db.User, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db.User), args.Error(1)
}

func (m *MockStore) FindUserByEmail(email string) (*db.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db.User), args.Error(1)
}

func (m *MockStore) FindUserByID(id uuid.UUID) (*db.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db.User), args.Error(1)
}

func (m *MockStore) UpdateUser(user *db.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStore) UpdateUserRole(id uuid.UUID, role string) error {
	args := m.Called(id, role)
	return args.Error(0)
}

func (m *MockStore) DeleteUser(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStore) ListUsersWithCounts() ([]db.UserWithCount, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db.UserWithCount), args.Error(1)
}

func (m *MockStore) CreateMovie(movie *db.Movie) (*db.Movie, error) {
	args := m.Called(movie)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db.Movie), args.Error(1)
}

func (m *MockStore) FindMovieByID(id uuid.UUID) (*db.Movie, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db.Movie), args.Error(1)
}

func (m *MockStore) ListMovies(limit int) ([]db.Movie, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db.Movie), args.Error(1)
}

func (m *MockStore) UpdateMovie(movie *db.Movie) error {
	args := m.Called(movie)
	return args.Error(0)
}

func (m *MockStore) DeleteMovie(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStore) ListGenres() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) ListWatchlist(userID uuid.UUID) ([]db.WatchlistEntry, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db.WatchlistEntry), args.Error(1)
}

func (m *MockStore) FindWatchlistEntry(userID, movieID uuid.UUID) (*db.WatchlistEntry, error) {
	args := m.Called(userID, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db.WatchlistEntry), args.Error(1)
}

func (m *MockStore) CreateWatchlistEntry(userID, movieID uuid.UUID) (*db.WatchlistEntry, error) {
	args := m.Called(userID, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db.WatchlistEntry), args.Error(1)
}

func (m *MockStore) MarkWatched(userID, movieID uuid.UUID) (*db.WatchlistEntry, error) {
	args := m.Called(userID, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db.WatchlistEntry), args.Error(1)
}

func (m *MockStore) DeleteWatchlistEntry(userID, movieID uuid.UUID) error {
	args := m.Called(userID, movieID)
	return args.Error(0)
}

func (m *MockStore) Stats() (*db.Stats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db.Stats), args.Error(1)
}

func (m *MockStore) MostWatchlisted(limit int) ([]db.MovieWithCount, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db.MovieWithCount), args.Error(1)
}

func (m *MockStore) UserGrowth() ([]db.MonthBucket, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db.MonthBucket), args.Error(1)
}

func (m *MockStore) CountUsersUpdatedSince(t time.Time) (int, error) {
	args := m.Called(t)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) DailyActiveCounts(t time.Time) ([]db.DayBucket, error) {
	args := m.Called(t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]db.DayBucket), args.Error(1)
}
