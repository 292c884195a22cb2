package queries

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/filmboard/filmboard-api/pkg/db"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// CreateMovie inserts a new catalog entry and fills in the generated fields.
func (s *Store) CreateMovie(movie *db.Movie) (*db.Movie, error) {
	query := `
		INSERT INTO movies (title, director, release_year, runtime, genre, rating, poster, trailer_url, description, main_cast, source)
		VALUES (:title, :director, :release_year, :runtime, :genre, :rating, :poster, :trailer_url, :description, :main_cast, :source)
		RETURNING id, created_at, updated_at`

	rows, err := s.db.NamedQuery(query, movie)
	if err != nil {
		log.Errorf("Error creating movie: %v", err)
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.StructScan(movie); err != nil {
			log.Errorf("Error scanning movie data after creation: %v", err)
			return nil, fmt.Errorf("error scanning movie after creation: %w", err)
		}
	} else {
		return nil, fmt.Errorf("no rows returned after movie creation")
	}

	log.Infof("Movie '%s' created with ID: %s", movie.Title, movie.ID.String())
	return movie, nil
}

// FindMovieByID retrieves one movie. Returns (nil, nil) when absent.
func (s *Store) FindMovieByID(id uuid.UUID) (*db.Movie, error) {
	movie := &db.Movie{}
	query := `SELECT * FROM movies WHERE id = $1`
	err := s.db.Get(movie, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Debugf("Movie with ID '%s' not found.", id.String())
			return nil, nil
		}
		log.Errorf("Error finding movie by ID '%s': %v", id.String(), err)
		return nil, fmt.Errorf("error finding movie by ID: %w", err)
	}
	return movie, nil
}

// ListMovies returns all movies newest-created-first, truncated to limit
// when limit is positive.
func (s *Store) ListMovies(limit int) ([]db.Movie, error) {
	var movies []db.Movie
	query := `SELECT * FROM movies ORDER BY created_at DESC`
	var err error
	if limit > 0 {
		err = s.db.Select(&movies, query+` LIMIT $1`, limit)
	} else {
		err = s.db.Select(&movies, query)
	}
	if err != nil {
		log.Errorf("Error listing movies: %v", err)
		return nil, fmt.Errorf("error listing movies: %w", err)
	}
	return movies, nil
}

// UpdateMovie writes back all mutable fields of an existing movie.
// Returns sql.ErrNoRows when the ID matches nothing.
func (s *Store) UpdateMovie(movie *db.Movie) error {
	movie.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE movies
		SET title = :title, director = :director, release_year = :release_year,
		    runtime = :runtime, genre = :genre, rating = :rating, poster = :poster,
		    trailer_url = :trailer_url, description = :description, main_cast = :main_cast,
		    source = :source, updated_at = :updated_at
		WHERE id = :id`

	result, err := s.db.NamedExec(query, movie)
	if err != nil {
		log.Errorf("Error updating movie with ID '%s': %v", movie.ID.String(), err)
		return fmt.Errorf("failed to update movie: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Warnf("No movie found with ID '%s' for update.", movie.ID.String())
		return sql.ErrNoRows
	}

	log.Infof("Movie with ID '%s' updated.", movie.ID.String())
	return nil
}

// DeleteMovie removes a movie; watchlist entries referencing it go with it
// via the ON DELETE CASCADE reference. Returns sql.ErrNoRows when absent.
func (s *Store) DeleteMovie(id uuid.UUID) error {
	query := `DELETE FROM movies WHERE id = $1`
	result, err := s.db.Exec(query, id)
	if err != nil {
		log.Errorf("Error deleting movie with ID '%s': %v", id.String(), err)
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Warnf("No movie found with ID '%s' for deletion.", id.String())
		return sql.ErrNoRows
	}

	log.Infof("Movie with ID '%s' deleted.", id.String())
	return nil
}

// ListGenres returns the raw genre string of every movie for tallying.
func (s *Store) ListGenres() ([]string, error) {
	var genres []string
	if err := s.db.Select(&genres, `SELECT genre FROM movies`); err != nil {
		log.Errorf("Error listing movie genres: %v", err)
		return nil, fmt.Errorf("error listing genres: %w", err)
	}
	return genres, nil
}
