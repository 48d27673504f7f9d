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
	usersListKey    = "users:list"
	msgUserNotFound = "User not found"
)

// UserHandler handles user-related operations
type UserHandler struct {
	users      *datastore.UserStore
	cache      cache.Cache
	bcryptCost int
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *datastore.UserStore, cache cache.Cache, bcryptCost int) *UserHandler {
	return &UserHandler{
		users:      users,
		cache:      cache,
		bcryptCost: bcryptCost,
	}
}

// ListUsers handles GET /v1/users - list all users
func (h *UserHandler) ListUsers(ctx context.Context, p auth.Principal, w http.ResponseWriter, r *http.Request) {
	logRequest(ctx, "info", "Listing users")

	if body, ok := cachedBody(h.cache, usersListKey); ok {
		logRequest(ctx, "debug", "Serving from cache")
		writeRaw(ctx, w, http.StatusOK, body)
		return
	}

	users, err := h.users.List(ctx)
	if err != nil {
		writeInternalError(ctx, w, "Failed to query users", err)
		return
	}

	response, err := json.Marshal(users)
	if err != nil {
		writeInternalError(ctx, w, "Failed to encode users", err)
		return
	}
	cacheBody(ctx, h.cache, usersListKey, response, listTTL)

	logRequest(ctx, "info", "Users retrieved successfully", zap.Int("count", len(users)))
	writeRaw(ctx, w, http.StatusOK, response)
}

// CreateUser handles POST /v1/users - sign up; no token required
func (h *UserHandler) CreateUser(ctx context.Context, _ auth.Principal, w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if !decodeBody(ctx, w, r, &req) {
		return
	}

	verrs := validateStruct(req)
	if _, bad := verrs["email"]; !bad {
		taken, err := h.users.EmailTaken(ctx, req.Email, 0)
		if err != nil {
			writeInternalError(ctx, w, "Failed to check email", err)
			return
		}
		if taken {
			verrs.Add("email", uniqueMessage("email"))
		}
	}
	if len(verrs) > 0 {
		writeValidation(ctx, w, verrs)
		return
	}

	logRequest(ctx, "info", "Creating user", zap.String("name", req.Name), zap.String("email", req.Email))

	hashed, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		writeInternalError(ctx, w, "Password hashing failed", err)
		return
	}

	user := models.User{Name: req.Name, Email: req.Email, Password: hashed}
	err = h.users.Create(ctx, &user)
	if errors.Is(err, datastore.ErrDuplicate) {
		writeValidation(ctx, w, ValidationErrors{"email": {uniqueMessage("email")}})
		return
	}
	if err != nil {
		writeInternalError(ctx, w, "Failed to create user", err)
		return
	}

	h.cache.Delete(usersListKey)

	logRequest(ctx, "info", "User created successfully", zap.Int64("user_id", user.ID))
	writeJSON(ctx, w, http.StatusCreated, user)
}

// ShowUser handles GET /v1/users/{id}
func (h *UserHandler) ShowUser(ctx context.Context, p auth.Principal, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		logRequest(ctx, "info", "User not found")
		writeMessage(ctx, w, http.StatusNotFound, msgUserNotFound)
		return
	}

	logRequest(ctx, "info", "Getting user", zap.Int64("user_id", id))

	user, err := h.users.Find(ctx, id)
	if errors.Is(err, datastore.ErrNotFound) {
		logRequest(ctx, "info", "User not found", zap.Int64("user_id", id))
		writeMessage(ctx, w, http.StatusNotFound, msgUserNotFound)
		return
	}
	if err != nil {
		writeInternalError(ctx, w, "Failed to query user", err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, user)
}

// UpdateUser handles PUT/PATCH /v1/users/{id}
// Only name, email and password are accepted; a new password is re-hashed
func (h *UserHandler) UpdateUser(ctx context.Context, p auth.Principal, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(ctx, w, http.StatusNotFound, msgUserNotFound)
		return
	}

	if _, err := h.users.Find(ctx, id); err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			logRequest(ctx, "info", "User not found for update", zap.Int64("user_id", id))
			writeMessage(ctx, w, http.StatusNotFound, msgUserNotFound)
			return
		}
		writeInternalError(ctx, w, "Failed to query user", err)
		return
	}

	var req models.UpdateUserRequest
	if !decodeBody(ctx, w, r, &req) {
		return
	}

	verrs := ValidationErrors{}
	if req.Name != nil {
		validateField(verrs, "name", *req.Name, "required,max=255")
	}
	if req.Email != nil {
		validateField(verrs, "email", *req.Email, "required,email,max=255")
		if _, bad := verrs["email"]; !bad {
			taken, err := h.users.EmailTaken(ctx, *req.Email, id)
			if err != nil {
				writeInternalError(ctx, w, "Failed to check email", err)
				return
			}
			if taken {
				verrs.Add("email", uniqueMessage("email"))
			}
		}
	}
	if req.Password != nil {
		validateField(verrs, "password", *req.Password, "required,min=8")
	}
	if len(verrs) > 0 {
		writeValidation(ctx, w, verrs)
		return
	}

	logRequest(ctx, "info", "Updating user", zap.Int64("user_id", id), zap.Int64("by_user_id", p.UserID))

	changes := datastore.UserChanges{Name: req.Name, Email: req.Email}
	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password, h.bcryptCost)
		if err != nil {
			writeInternalError(ctx, w, "Password hashing failed", err)
			return
		}
		changes.Password = &hashed
	}

	user, err := h.users.Update(ctx, id, changes)
	switch {
	case errors.Is(err, datastore.ErrNotFound):
		writeMessage(ctx, w, http.StatusNotFound, msgUserNotFound)
		return
	case errors.Is(err, datastore.ErrDuplicate):
		writeValidation(ctx, w, ValidationErrors{"email": {uniqueMessage("email")}})
		return
	case err != nil:
		writeInternalError(ctx, w, "Failed to update user", err)
		return
	}

	h.invalidate()

	logRequest(ctx, "info", "User updated successfully", zap.Int64("user_id", id))
	writeJSON(ctx, w, http.StatusOK, user)
}

// DeleteUser handles DELETE /v1/users/{id}
// The user's posts and tokens are removed with it
func (h *UserHandler) DeleteUser(ctx context.Context, p auth.Principal, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(ctx, w, http.StatusNotFound, msgUserNotFound)
		return
	}

	logRequest(ctx, "info", "Deleting user", zap.Int64("user_id", id), zap.Int64("by_user_id", p.UserID))

	err := h.users.Delete(ctx, id)
	if errors.Is(err, datastore.ErrNotFound) {
		logRequest(ctx, "info", "User not found for deletion", zap.Int64("user_id", id))
		writeMessage(ctx, w, http.StatusNotFound, msgUserNotFound)
		return
	}
	if err != nil {
		writeInternalError(ctx, w, "Failed to delete user", err)
		return
	}

	h.invalidate()

	logRequest(ctx, "info", "User deleted successfully", zap.Int64("user_id", id))
	writeNoContent(ctx, w)
}

// invalidate drops every cached body that embeds the user, including
// author names in the post collection.
func (h *UserHandler) invalidate() {
	h.cache.Delete(usersListKey)
	h.cache.Delete(postsListKey)
}
