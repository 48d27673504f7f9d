package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blog-api/datastore"
	"blog-api/models"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("the credentials do not match our records")

	// ErrUnauthenticated is returned when a bearer token resolves to nobody.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// UserFinder is the part of the credential store auth needs.
type UserFinder interface {
	Find(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// TokenRepository persists hashed tokens.
type TokenRepository interface {
	Create(ctx context.Context, token *models.PersonalAccessToken) error
	Find(ctx context.Context, id int64) (*models.PersonalAccessToken, error)
	FindByHash(ctx context.Context, hash string) (*models.PersonalAccessToken, error)
	Touch(ctx context.Context, id int64, at time.Time) error
}

// IssuedToken carries the only copy of the plaintext token.
type IssuedToken struct {
	User      models.User
	Token     models.PersonalAccessToken
	PlainText string
}

// Issuer verifies credentials and mints personal access tokens.
type Issuer struct {
	users     UserFinder
	tokens    TokenRepository
	dummyHash []byte
}

// NewIssuer builds an issuer. bcryptCost should match the cost user
// passwords are hashed with so that unknown emails take as long to reject
// as wrong passwords.
func NewIssuer(users UserFinder, tokens TokenRepository, bcryptCost int) *Issuer {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	return &Issuer{users: users, tokens: tokens, dummyHash: dummy}
}

// Issue checks email/password and stores a new token named deviceName.
// Earlier tokens of the same user and device stay valid.
func (i *Issuer) Issue(ctx context.Context, email, password, deviceName string) (*IssuedToken, error) {
	user, err := i.users.FindByEmail(ctx, email)
	if errors.Is(err, datastore.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(i.dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	secret, err := NewSecret()
	if err != nil {
		return nil, err
	}
	token := models.PersonalAccessToken{
		UserID: user.ID,
		Name:   deviceName,
		Token:  HashSecret(secret),
	}
	if err := i.tokens.Create(ctx, &token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	return &IssuedToken{
		User:      *user,
		Token:     token,
		PlainText: PlainText(token.ID, secret),
	}, nil
}
