package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"blog-api/models"

	"github.com/jmoiron/sqlx"
)

const userColumns = "id, name, email, password, created_at, updated_at"

// UserStore is the credential store: users with their bcrypt hashes.
type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

// UserChanges lists the columns an update may touch. Nil fields are left as is.
// Password must already be hashed.
type UserChanges struct {
	Name     *string
	Email    *string
	Password *string
}

// List returns every user in insertion order.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.SelectContext(ctx, &users, "SELECT "+userColumns+" FROM users ORDER BY id"); err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	return users, nil
}

// Find retrieves a user by ID.
func (s *UserStore) Find(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &user, nil
}

// FindByEmail retrieves the unique user owning email.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// EmailTaken reports whether another user than exceptID already uses email.
// Pass exceptID 0 to check against every user.
func (s *UserStore) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM users WHERE email = ? AND id != ?", email, exceptID)
	if err != nil {
		return false, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	return count > 0, nil
}

// Create inserts user and fills in its ID and timestamps.
// user.Password must already be hashed.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO users (name, email, password, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		user.Name, user.Email, user.Password, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}
	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// Update applies changes to the user and returns the stored row.
func (s *UserStore) Update(ctx context.Context, id int64, changes UserChanges) (*models.User, error) {
	setParts := []string{}
	args := []interface{}{}

	if changes.Name != nil {
		setParts = append(setParts, "name = ?")
		args = append(args, *changes.Name)
	}
	if changes.Email != nil {
		setParts = append(setParts, "email = ?")
		args = append(args, *changes.Email)
	}
	if changes.Password != nil {
		setParts = append(setParts, "password = ?")
		args = append(args, *changes.Password)
	}

	if len(setParts) > 0 {
		setParts = append(setParts, "updated_at = ?")
		args = append(args, time.Now().UTC(), id)

		query := "UPDATE users SET " + strings.Join(setParts, ", ") + " WHERE id = ?"
		result, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, ErrDuplicate
			}
			return nil, fmt.Errorf("failed to update user %d: %w", id, err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return nil, ErrNotFound
		}
	}

	return s.Find(ctx, id)
}

// Delete removes the user. Posts and tokens go with it (ON DELETE CASCADE).
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
