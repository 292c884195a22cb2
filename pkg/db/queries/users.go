package queries

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/filmboard/filmboard-api/pkg/db"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// CreateUser inserts a new user and fills in the generated fields.
// Returns ErrDuplicateEntry when the email is already taken.
func (s *Store) CreateUser(user *db.User) (*db.User, error) {
	query := `
		INSERT INTO users (full_name, first_name, last_name, email, password_hash, date_of_birth, profile_picture, role)
		VALUES (:full_name, :first_name, :last_name, :email, :password_hash, :date_of_birth, :profile_picture, :role)
		RETURNING id, created_at, updated_at`

	rows, err := s.db.NamedQuery(query, user)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debugf("CreateUser: email '%s' already exists.", user.Email)
			return nil, ErrDuplicateEntry
		}
		log.Errorf("Error creating user: %v", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.StructScan(user); err != nil {
			log.Errorf("Error scanning user data after creation: %v", err)
			return nil, fmt.Errorf("error scanning user after creation: %w", err)
		}
	} else {
		return nil, fmt.Errorf("no rows returned after user creation")
	}

	log.Infof("User %s created with ID: %s", user.Email, user.ID.String())
	return user, nil
}

// FindUserByEmail retrieves a user by email, compared case-insensitively.
// Returns (nil, nil) when no user has that email.
func (s *Store) FindUserByEmail(email string) (*db.User, error) {
	user := &db.User{}
	query := `SELECT * FROM users WHERE lower(email) = lower($1)`
	err := s.db.Get(user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Debugf("User with email '%s' not found.", email)
			return nil, nil
		}
		log.Errorf("Error finding user by email '%s': %v", email, err)
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	return user, nil
}

// FindUserByID retrieves a user by ID. Returns (nil, nil) when absent.
func (s *Store) FindUserByID(id uuid.UUID) (*db.User, error) {
	user := &db.User{}
	query := `SELECT * FROM users WHERE id = $1`
	err := s.db.Get(user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Debugf("User with ID '%s' not found.", id.String())
			return nil, nil
		}
		log.Errorf("Error finding user by ID '%s': %v", id.String(), err)
		return nil, fmt.Errorf("error finding user by ID: %w", err)
	}
	return user, nil
}

// UpdateUser writes back the mutable profile fields of an existing user.
// Returns sql.ErrNoRows when the ID matches nothing.
func (s *Store) UpdateUser(user *db.User) error {
	user.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE users
		SET full_name = :full_name, first_name = :first_name, last_name = :last_name,
		    date_of_birth = :date_of_birth, profile_picture = :profile_picture, updated_at = :updated_at
		WHERE id = :id`

	result, err := s.db.NamedExec(query, user)
	if err != nil {
		log.Errorf("Error updating user with ID '%s': %v", user.ID.String(), err)
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Warnf("No user found with ID '%s' for update.", user.ID.String())
		return sql.ErrNoRows
	}

	log.Infof("User with ID '%s' updated.", user.ID.String())
	return nil
}

// UpdateUserRole sets the role of a user. Returns sql.ErrNoRows when absent.
func (s *Store) UpdateUserRole(id uuid.UUID, role string) error {
	query := `UPDATE users SET role = $2, updated_at = now() WHERE id = $1`
	result, err := s.db.Exec(query, id, role)
	if err != nil {
		log.Errorf("Error updating role for user '%s': %v", id.String(), err)
		return fmt.Errorf("failed to update user role: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Warnf("No user found with ID '%s' for role update.", id.String())
		return sql.ErrNoRows
	}

	log.Infof("User '%s' role set to '%s'.", id.String(), role)
	return nil
}

// DeleteUser removes a user; the user's watchlist entries go with it via
// the ON DELETE CASCADE reference. Returns sql.ErrNoRows when absent.
func (s *Store) DeleteUser(id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`
	result, err := s.db.Exec(query, id)
	if err != nil {
		log.Errorf("Error deleting user with ID '%s': %v", id.String(), err)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Warnf("No user found with ID '%s' for deletion.", id.String())
		return sql.ErrNoRows
	}

	log.Infof("User with ID '%s' deleted.", id.String())
	return nil
}

// ListUsersWithCounts returns every user annotated with its watchlist entry
// count in one grouped query, newest first.
func (s *Store) ListUsersWithCounts() ([]db.UserWithCount, error) {
	var users []db.UserWithCount
	query := `
		SELECT u.*, count(w.id) AS watchlist_count
		FROM users u
		LEFT JOIN watchlist_entries w ON w.user_id = u.id
		GROUP BY u.id
		ORDER BY u.created_at DESC`
	if err := s.db.Select(&users, query); err != nil {
		log.Errorf("Error listing users with watchlist counts: %v", err)
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}
