package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blog-api/models"

	"github.com/jmoiron/sqlx"
)

const tokenColumns = "id, user_id, name, token, last_used_at, created_at"

// TokenStore persists personal access tokens by their hash.
type TokenStore struct {
	db *sqlx.DB
}

func NewTokenStore(db *sqlx.DB) *TokenStore {
	return &TokenStore{db: db}
}

// Create inserts token and fills in its ID and creation time.
// token.Token must be the hash, never the plaintext.
func (s *TokenStore) Create(ctx context.Context, token *models.PersonalAccessToken) error {
	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO personal_access_tokens (user_id, name, token, created_at) VALUES (?, ?, ?, ?)",
		token.UserID, token.Name, token.Token, now)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert token: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read token id: %w", err)
	}
	token.ID = id
	token.CreatedAt = now
	return nil
}

func (s *TokenStore) Find(ctx context.Context, id int64) (*models.PersonalAccessToken, error) {
	var token models.PersonalAccessToken
	err := s.db.GetContext(ctx, &token, "SELECT "+tokenColumns+" FROM personal_access_tokens WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get token %d: %w", id, err)
	}
	return &token, nil
}

func (s *TokenStore) FindByHash(ctx context.Context, hash string) (*models.PersonalAccessToken, error) {
	var token models.PersonalAccessToken
	err := s.db.GetContext(ctx, &token, "SELECT "+tokenColumns+" FROM personal_access_tokens WHERE token = ?", hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get token by hash: %w", err)
	}
	return &token, nil
}

// ListByUser returns the user's tokens, oldest first.
func (s *TokenStore) ListByUser(ctx context.Context, userID int64) ([]models.PersonalAccessToken, error) {
	tokens := []models.PersonalAccessToken{}
	err := s.db.SelectContext(ctx, &tokens,
		"SELECT "+tokenColumns+" FROM personal_access_tokens WHERE user_id = ? ORDER BY id", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tokens for user %d: %w", userID, err)
	}
	return tokens, nil
}

// Touch stamps last_used_at.
func (s *TokenStore) Touch(ctx context.Context, id int64, at time.Time) error {
	if _, err := s.db.ExecContext(ctx, "UPDATE personal_access_tokens SET last_used_at = ? WHERE id = ?", at.UTC(), id); err != nil {
		return fmt.Errorf("failed to touch token %d: %w", id, err)
	}
	return nil
}
