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

const postColumns = "id, title, content, user_id, created_at, updated_at"

type PostStore struct {
	db *sqlx.DB
}

func NewPostStore(db *sqlx.DB) *PostStore {
	return &PostStore{db: db}
}

// PostChanges lists the columns an update may touch. Nil fields are left as is.
type PostChanges struct {
	Title   *string
	Content *string
	UserID  *int64
}

func (s *PostStore) List(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	if err := s.db.SelectContext(ctx, &posts, "SELECT "+postColumns+" FROM posts ORDER BY id"); err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	return posts, nil
}

func (s *PostStore) Find(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	err := s.db.GetContext(ctx, &post, "SELECT "+postColumns+" FROM posts WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post %d: %w", id, err)
	}
	return &post, nil
}

// Create inserts post and fills in its ID and timestamps.
func (s *PostStore) Create(ctx context.Context, post *models.Post) error {
	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO posts (title, content, user_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		post.Title, post.Content, post.UserID, now, now)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read post id: %w", err)
	}
	post.ID = id
	post.CreatedAt = now
	post.UpdatedAt = now
	return nil
}

func (s *PostStore) Update(ctx context.Context, id int64, changes PostChanges) (*models.Post, error) {
	setParts := []string{}
	args := []interface{}{}

	if changes.Title != nil {
		setParts = append(setParts, "title = ?")
		args = append(args, *changes.Title)
	}
	if changes.Content != nil {
		setParts = append(setParts, "content = ?")
		args = append(args, *changes.Content)
	}
	if changes.UserID != nil {
		setParts = append(setParts, "user_id = ?")
		args = append(args, *changes.UserID)
	}

	if len(setParts) > 0 {
		setParts = append(setParts, "updated_at = ?")
		args = append(args, time.Now().UTC(), id)

		query := "UPDATE posts SET " + strings.Join(setParts, ", ") + " WHERE id = ?"
		result, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to update post %d: %w", id, err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return nil, ErrNotFound
		}
	}

	return s.Find(ctx, id)
}

func (s *PostStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete post %d: %w", id, err)
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
