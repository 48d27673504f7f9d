package handlers

import (
	"context"
	"fmt"

	"blog-api/models"
)

// AuthorLookup resolves the author of a post.
type AuthorLookup interface {
	Find(ctx context.Context, id int64) (*models.User, error)
}

// shapePosts projects posts for the collection endpoint: the author's name
// replaces user_id and created_at is cut to its date. Authors are looked up
// one post at a time.
func shapePosts(ctx context.Context, posts []models.Post, authors AuthorLookup) (models.PostCollection, error) {
	items := make([]models.PostListItem, 0, len(posts))
	for _, post := range posts {
		author, err := authors.Find(ctx, post.UserID)
		if err != nil {
			return models.PostCollection{}, fmt.Errorf("author %d of post %d: %w", post.UserID, post.ID, err)
		}
		items = append(items, models.PostListItem{
			ID:      post.ID,
			Title:   post.Title,
			Content: post.Content,
			Author:  author.Name,
			Date:    post.CreatedAt.UTC().Format("2006-01-02"),
		})
	}
	return models.PostCollection{Data: items}, nil
}
