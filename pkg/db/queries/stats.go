package queries

import (
	"fmt"
	"time"

	"github.com/filmboard/filmboard-api/pkg/db"
	log "github.com/sirupsen/logrus"
)

// Stats returns the dashboard summary counts in a single round trip.
func (s *Store) Stats() (*db.Stats, error) {
	stats := &db.Stats{}
	query := `
		SELECT
			(SELECT count(*) FROM users)                        AS total_users,
			(SELECT count(*) FROM movies)                       AS total_movies,
			(SELECT count(*) FROM watchlist_entries)            AS total_watchlist_entries,
			(SELECT count(*) FROM users WHERE role = 'admin')   AS admin_users`
	if err := s.db.Get(stats, query); err != nil {
		log.Errorf("Error computing stats summary: %v", err)
		return nil, fmt.Errorf("error computing stats: %w", err)
	}
	return stats, nil
}

// MostWatchlisted groups watchlist entries by movie and returns the top
// limit movies by entry count, joined to their catalog records.
func (s *Store) MostWatchlisted(limit int) ([]db.MovieWithCount, error) {
	var movies []db.MovieWithCount
	query := `
		SELECT m.*, count(w.id) AS count
		FROM watchlist_entries w
		JOIN movies m ON m.id = w.movie_id
		GROUP BY m.id
		ORDER BY count DESC
		LIMIT $1`
	if err := s.db.Select(&movies, query, limit); err != nil {
		log.Errorf("Error computing most-watchlisted movies: %v", err)
		return nil, fmt.Errorf("error computing most-watchlisted movies: %w", err)
	}
	return movies, nil
}

// UserGrowth buckets signups by calendar month, oldest first.
func (s *Store) UserGrowth() ([]db.MonthBucket, error) {
	var buckets []db.MonthBucket
	query := `
		SELECT extract(year FROM created_at)::int  AS year,
		       extract(month FROM created_at)::int AS month,
		       count(*)                            AS count
		FROM users
		GROUP BY year, month
		ORDER BY year, month`
	if err := s.db.Select(&buckets, query); err != nil {
		log.Errorf("Error computing user growth: %v", err)
		return nil, fmt.Errorf("error computing user growth: %w", err)
	}
	return buckets, nil
}

// CountUsersUpdatedSince counts users whose last update falls after t,
// used as the activity proxy (there is no login event log).
func (s *Store) CountUsersUpdatedSince(t time.Time) (int, error) {
	var count int
	query := `SELECT count(*) FROM users WHERE updated_at >= $1`
	if err := s.db.Get(&count, query, t); err != nil {
		log.Errorf("Error counting users updated since %s: %v", t, err)
		return 0, fmt.Errorf("error counting active users: %w", err)
	}
	return count, nil
}

// DailyActiveCounts buckets active users per day since t, oldest first.
func (s *Store) DailyActiveCounts(t time.Time) ([]db.DayBucket, error) {
	var buckets []db.DayBucket
	query := `
		SELECT date_trunc('day', updated_at) AS day, count(*) AS count
		FROM users
		WHERE updated_at >= $1
		GROUP BY day
		ORDER BY day`
	if err := s.db.Select(&buckets, query, t); err != nil {
		log.Errorf("Error computing daily active counts: %v", err)
		return nil, fmt.Errorf("error computing daily activity: %w", err)
	}
	return buckets, nil
}
