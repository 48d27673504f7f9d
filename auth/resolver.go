package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"blog-api/datastore"
	"blog-api/models"

	"github.com/umakantv/go-utils/httpserver"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// Resolver turns a bearer token into the Principal that owns it.
type Resolver struct {
	users  UserFinder
	tokens TokenRepository
	now    func() time.Time
}

func NewResolver(users UserFinder, tokens TokenRepository) *Resolver {
	return &Resolver{users: users, tokens: tokens, now: time.Now}
}

// Resolve looks the token up, checks its secret in constant time and stamps
// last_used_at. Any mismatch is ErrUnauthenticated.
func (r *Resolver) Resolve(ctx context.Context, plain string) (Principal, error) {
	token, err := r.lookup(ctx, plain)
	if err != nil {
		return Anonymous, err
	}

	user, err := r.users.Find(ctx, token.UserID)
	if errors.Is(err, datastore.ErrNotFound) {
		return Anonymous, ErrUnauthenticated
	}
	if err != nil {
		return Anonymous, err
	}

	if err := r.tokens.Touch(ctx, token.ID, r.now()); err != nil {
		return Anonymous, err
	}

	return Principal{
		UserID:     user.ID,
		TokenID:    token.ID,
		DeviceName: token.Name,
		Name:       user.Name,
		Email:      user.Email,
	}, nil
}

func (r *Resolver) lookup(ctx context.Context, plain string) (*models.PersonalAccessToken, error) {
	id, secret, ok := ParsePlainText(plain)
	hash := HashSecret(secret)

	var (
		token *models.PersonalAccessToken
		err   error
	)
	if ok {
		token, err = r.tokens.Find(ctx, id)
	} else {
		token, err = r.tokens.FindByHash(ctx, hash)
	}
	if errors.Is(err, datastore.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(token.Token), []byte(hash)) != 1 {
		return nil, ErrUnauthenticated
	}
	return token, nil
}

// CheckAuth is the httpserver auth hook for bearer routes. It never rejects:
// a request without a valid token carries an empty RequestAuth, and
// handlers.Protected answers it with a JSON 401.
func (r *Resolver) CheckAuth(req *http.Request) (bool, httpserver.RequestAuth) {
	plain, ok := BearerToken(req.Header.Get("Authorization"))
	if !ok {
		return true, httpserver.RequestAuth{}
	}

	p, err := r.Resolve(req.Context(), plain)
	if err != nil {
		if !errors.Is(err, ErrUnauthenticated) {
			logger.Error("Token lookup failed", zap.Error(err))
		}
		return true, httpserver.RequestAuth{}
	}
	return true, p.RequestAuth()
}
