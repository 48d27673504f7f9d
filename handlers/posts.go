package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"blog-api/auth"
	"blog-api/datastore"
	"blog-api/models"

	"github.com/umakantv/go-utils/cache"
	"go.uber.org/zap"
)

const (
	postsListKey    = "posts:list"
	msgPostNotFound = "Post not found"
)

// PostHandler handles post-related operations
type PostHandler struct {
	posts *datastore.PostStore
	users *datastore.UserStore
	cache cache.Cache
}

func NewPostHandler(posts *datastore.PostStore, users *datastore.UserStore, cache cache.Cache) *PostHandler {
	return &PostHandler{
		posts: posts,
		users: users,
		cache: cache,
	}
}

// ListPosts handles GET /v1/posts - the projected collection {data: [...]}
func (h *PostHandler) ListPosts(ctx context.Context, _ auth.Principal, w http.ResponseWriter, r *http.Request) {
	logRequest(ctx, "info", "Listing posts")

	if body, ok := cachedBody(h.cache, postsListKey); ok {
		logRequest(ctx, "debug", "Serving posts from cache")
		writeRaw(ctx, w, http.StatusOK, body)
		return
	}

	posts, err := h.posts.List(ctx)
	if err != nil {
		writeInternalError(ctx, w, "Failed to query posts", err)
		return
	}

	collection, err := shapePosts(ctx, posts, h.users)
	if err != nil {
		writeInternalError(ctx, w, "Failed to resolve post authors", err)
		return
	}

	response, err := json.Marshal(collection)
	if err != nil {
		writeInternalError(ctx, w, "Failed to encode posts", err)
		return
	}
	cacheBody(ctx, h.cache, postsListKey, response, listTTL)

	logRequest(ctx, "info", "Posts retrieved successfully", zap.Int("count", len(posts)))
	writeRaw(ctx, w, http.StatusOK, response)
}

// CreatePost handles POST /v1/posts
// user_id comes from the payload, not from the caller
func (h *PostHandler) CreatePost(ctx context.Context, p auth.Principal, w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if !decodeBody(ctx, w, r, &req) {
		return
	}

	verrs := validateStruct(req)
	if req.UserID != nil {
		_, err := h.users.Find(ctx, *req.UserID)
		if errors.Is(err, datastore.ErrNotFound) {
			verrs.Add("user_id", existsMessage("user_id"))
		} else if err != nil {
			writeInternalError(ctx, w, "Failed to query author", err)
			return
		}
	}
	if len(verrs) > 0 {
		writeValidation(ctx, w, verrs)
		return
	}

	logRequest(ctx, "info", "Creating post", zap.Int64("user_id", *req.UserID), zap.Int64("by_user_id", p.UserID))

	post := models.Post{Title: req.Title, Content: req.Content, UserID: *req.UserID}
	if err := h.posts.Create(ctx, &post); err != nil {
		writeInternalError(ctx, w, "Failed to create post", err)
		return
	}

	h.cache.Delete(postsListKey)

	logRequest(ctx, "info", "Post created successfully", zap.Int64("post_id", post.ID))
	writeJSON(ctx, w, http.StatusCreated, post)
}

// ShowPost handles GET /v1/posts/{id} - raw fields, no projection
func (h *PostHandler) ShowPost(ctx context.Context, _ auth.Principal, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(ctx, w, http.StatusNotFound, msgPostNotFound)
		return
	}

	post, err := h.posts.Find(ctx, id)
	if errors.Is(err, datastore.ErrNotFound) {
		logRequest(ctx, "info", "Post not found", zap.Int64("post_id", id))
		writeMessage(ctx, w, http.StatusNotFound, msgPostNotFound)
		return
	}
	if err != nil {
		writeInternalError(ctx, w, "Failed to query post", err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, post)
}

// UpdatePost handles PUT/PATCH /v1/posts/{id}
// Allow-listed fields are applied without rule validation; a user_id that
// matches no user fails on the foreign key
func (h *PostHandler) UpdatePost(ctx context.Context, p auth.Principal, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(ctx, w, http.StatusNotFound, msgPostNotFound)
		return
	}

	if _, err := h.posts.Find(ctx, id); err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			logRequest(ctx, "info", "Post not found for update", zap.Int64("post_id", id))
			writeMessage(ctx, w, http.StatusNotFound, msgPostNotFound)
			return
		}
		writeInternalError(ctx, w, "Failed to query post", err)
		return
	}

	var req models.UpdatePostRequest
	if !decodeBody(ctx, w, r, &req) {
		return
	}

	logRequest(ctx, "info", "Updating post", zap.Int64("post_id", id), zap.Int64("by_user_id", p.UserID))

	post, err := h.posts.Update(ctx, id, datastore.PostChanges{
		Title:   req.Title,
		Content: req.Content,
		UserID:  req.UserID,
	})
	if errors.Is(err, datastore.ErrNotFound) {
		writeMessage(ctx, w, http.StatusNotFound, msgPostNotFound)
		return
	}
	if err != nil {
		writeInternalError(ctx, w, "Failed to update post", err)
		return
	}

	h.cache.Delete(postsListKey)

	logRequest(ctx, "info", "Post updated successfully", zap.Int64("post_id", id))
	writeJSON(ctx, w, http.StatusOK, post)
}

// DeletePost handles DELETE /v1/posts/{id}
func (h *PostHandler) DeletePost(ctx context.Context, p auth.Principal, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(ctx, w, http.StatusNotFound, msgPostNotFound)
		return
	}

	logRequest(ctx, "info", "Deleting post", zap.Int64("post_id", id), zap.Int64("by_user_id", p.UserID))

	err := h.posts.Delete(ctx, id)
	if errors.Is(err, datastore.ErrNotFound) {
		logRequest(ctx, "info", "Post not found for deletion", zap.Int64("post_id", id))
		writeMessage(ctx, w, http.StatusNotFound, msgPostNotFound)
		return
	}
	if err != nil {
		writeInternalError(ctx, w, "Failed to delete post", err)
		return
	}

	h.cache.Delete(postsListKey)

	logRequest(ctx, "info", "Post deleted successfully", zap.Int64("post_id", id))
	writeNoContent(ctx, w)
}
