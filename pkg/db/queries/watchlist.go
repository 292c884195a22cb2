package queries

import (
	"database/sql"
	"fmt"

	"github.com/filmboard/filmboard-api/pkg/db"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// watchlistColumns selects an entry joined to its movie so sqlx can scan
// the movie into the entry's embedded Movie field.
const watchlistColumns = `
	w.id, w.user_id, w.movie_id, w.added_at, w.watched, w.watched_at, w.created_at, w.updated_at,
	m.id "movie.id", m.title "movie.title", m.director "movie.director",
	m.release_year "movie.release_year", m.runtime "movie.runtime", m.genre "movie.genre",
	m.rating "movie.rating", m.poster "movie.poster", m.trailer_url "movie.trailer_url",
	m.description "movie.description", m.main_cast "movie.main_cast", m.source "movie.source",
	m.created_at "movie.created_at", m.updated_at "movie.updated_at"`

// ListWatchlist returns a user's entries with the movie resolved, most
// recently added first.
func (s *Store) ListWatchlist(userID uuid.UUID) ([]db.WatchlistEntry, error) {
	var entries []db.WatchlistEntry
	query := `
		SELECT ` + watchlistColumns + `
		FROM watchlist_entries w
		JOIN movies m ON m.id = w.movie_id
		WHERE w.user_id = $1
		ORDER BY w.added_at DESC`
	if err := s.db.Select(&entries, query, userID); err != nil {
		log.Errorf("Error listing watchlist for user '%s': %v", userID.String(), err)
		return nil, fmt.Errorf("error listing watchlist: %w", err)
	}
	return entries, nil
}

// FindWatchlistEntry retrieves the entry for a (user, movie) pair with the
// movie resolved. Returns (nil, nil) when the pair has no entry.
func (s *Store) FindWatchlistEntry(userID, movieID uuid.UUID) (*db.WatchlistEntry, error) {
	entry := &db.WatchlistEntry{}
	query := `
		SELECT ` + watchlistColumns + `
		FROM watchlist_entries w
		JOIN movies m ON m.id = w.movie_id
		WHERE w.user_id = $1 AND w.movie_id = $2`
	err := s.db.Get(entry, query, userID, movieID)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Debugf("No watchlist entry for user '%s' and movie '%s'.", userID.String(), movieID.String())
			return nil, nil
		}
		log.Errorf("Error finding watchlist entry for user '%s' and movie '%s': %v", userID.String(), movieID.String(), err)
		return nil, fmt.Errorf("error finding watchlist entry: %w", err)
	}
	return entry, nil
}

// CreateWatchlistEntry inserts an entry for a (user, movie) pair. The unique
// index on the pair closes the race between two concurrent identical adds;
// the loser gets ErrDuplicateEntry.
func (s *Store) CreateWatchlistEntry(userID, movieID uuid.UUID) (*db.WatchlistEntry, error) {
	entry := &db.WatchlistEntry{UserID: userID, MovieID: movieID}
	query := `
		INSERT INTO watchlist_entries (user_id, movie_id)
		VALUES (:user_id, :movie_id)
		RETURNING id, added_at, watched, watched_at, created_at, updated_at`

	rows, err := s.db.NamedQuery(query, entry)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debugf("Watchlist entry for user '%s' and movie '%s' already exists.", userID.String(), movieID.String())
			return nil, ErrDuplicateEntry
		}
		log.Errorf("Error creating watchlist entry: %v", err)
		return nil, fmt.Errorf("failed to create watchlist entry: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.StructScan(entry); err != nil {
			log.Errorf("Error scanning watchlist entry after creation: %v", err)
			return nil, fmt.Errorf("error scanning watchlist entry after creation: %w", err)
		}
	} else {
		return nil, fmt.Errorf("no rows returned after watchlist entry creation")
	}

	log.Infof("Watchlist entry '%s' created for user '%s'.", entry.ID.String(), userID.String())
	return entry, nil
}

// MarkWatched flags the entry for a (user, movie) pair as watched and stamps
// watched_at. Returns (nil, nil) when the pair has no entry.
func (s *Store) MarkWatched(userID, movieID uuid.UUID) (*db.WatchlistEntry, error) {
	entry := &db.WatchlistEntry{}
	query := `
		UPDATE watchlist_entries
		SET watched = true, watched_at = now(), updated_at = now()
		WHERE user_id = $1 AND movie_id = $2
		RETURNING id, user_id, movie_id, added_at, watched, watched_at, created_at, updated_at`
	err := s.db.Get(entry, query, userID, movieID)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Debugf("No watchlist entry to mark watched for user '%s' and movie '%s'.", userID.String(), movieID.String())
			return nil, nil
		}
		log.Errorf("Error marking watchlist entry watched: %v", err)
		return nil, fmt.Errorf("error marking watchlist entry watched: %w", err)
	}

	log.Infof("Watchlist entry '%s' marked watched.", entry.ID.String())
	return entry, nil
}

// DeleteWatchlistEntry removes the entry for a (user, movie) pair.
// Returns sql.ErrNoRows when the pair has no entry.
func (s *Store) DeleteWatchlistEntry(userID, movieID uuid.UUID) error {
	query := `DELETE FROM watchlist_entries WHERE user_id = $1 AND movie_id = $2`
	result, err := s.db.Exec(query, userID, movieID)
	if err != nil {
		log.Errorf("Error deleting watchlist entry for user '%s' and movie '%s': %v", userID.String(), movieID.String(), err)
		return fmt.Errorf("failed to delete watchlist entry: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Warnf("No watchlist entry for user '%s' and movie '%s' to delete.", userID.String(), movieID.String())
		return sql.ErrNoRows
	}

	log.Infof("Watchlist entry for user '%s' and movie '%s' deleted.", userID.String(), movieID.String())
	return nil
}
