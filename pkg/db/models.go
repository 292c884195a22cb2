package db

import (
	"time"

	"github.com/google/uuid"
)

// Role values accepted for User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	FullName       string     `db:"full_name" json:"fullName"`
	FirstName      *string    `db:"first_name" json:"firstName,omitempty"`
	LastName       *string    `db:"last_name" json:"lastName,omitempty"`
	Email          string     `db:"email" json:"email"` // stored lower-cased and trimmed
	PasswordHash   string     `db:"password_hash" json:"-"`
	DateOfBirth    *time.Time `db:"date_of_birth" json:"dateOfBirth,omitempty"`
	ProfilePicture *string    `db:"profile_picture" json:"profilePicture,omitempty"`
	Role           string     `db:"role" json:"role"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`
}

// PublicUser is the subset of User returned by the auth endpoints.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public strips the user down to the fields safe to hand to a client.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

type Movie struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Director    string    `db:"director" json:"director"`
	ReleaseYear string    `db:"release_year" json:"releaseYear"` // free text, e.g. "1999"
	Runtime     *int      `db:"runtime" json:"runtime,omitempty"`
	Genre       string    `db:"genre" json:"genre"` // comma-separated free text
	Rating      *float64  `db:"rating" json:"rating,omitempty"`
	Poster      *string   `db:"poster" json:"poster,omitempty"`
	TrailerURL  *string   `db:"trailer_url" json:"trailerUrl,omitempty"`
	Description string    `db:"description" json:"description"`
	MainCast    *string   `db:"main_cast" json:"mainCast,omitempty"` // comma-separated free text
	Source      *string   `db:"source" json:"source,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type WatchlistEntry struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	UserID    uuid.UUID  `db:"user_id" json:"userId"`
	MovieID   uuid.UUID  `db:"movie_id" json:"movieId"`
	AddedAt   time.Time  `db:"added_at" json:"addedAt"`
	Watched   bool       `db:"watched" json:"watched"`
	WatchedAt *time.Time `db:"watched_at" json:"watchedAt"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
	Movie     Movie      `db:"movie" json:"movie"` // resolved movie record
}

// UserWithCount is a user row annotated with its watchlist entry count,
// produced by a single grouped query on the admin listing.
type UserWithCount struct {
	User
	WatchlistCount int `db:"watchlist_count" json:"watchlistCount"`
}

// MovieWithCount is a movie row annotated with how many watchlists contain it.
type MovieWithCount struct {
	Movie
	Count int `db:"count" json:"count"`
}

// Stats holds the admin dashboard summary counts.
type Stats struct {
	TotalUsers            int `db:"total_users" json:"totalUsers"`
	TotalMovies           int `db:"total_movies" json:"totalMovies"`
	TotalWatchlistEntries int `db:"total_watchlist_entries" json:"totalWatchlistEntries"`
	AdminUsers            int `db:"admin_users" json:"adminUsers"`
}

// MonthBucket is one month of signups for the user growth chart.
type MonthBucket struct {
	Year  int `db:"year"`
	Month int `db:"month"`
	Count int `db:"count"`
}

// DayBucket is one day of active users for the activity chart.
type DayBucket struct {
	Day   time.Time `db:"day"`
	Count int       `db:"count"`
}
