// Package auth issues personal access tokens and resolves bearer tokens
// back to the user that owns them.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// secretBytes random bytes give a 40 character hex secret.
const secretBytes = 20

// NewSecret returns a random 40 character token secret.
func NewSecret() (string, error) {
	b := make([]byte, secretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashSecret is the form stored in personal_access_tokens.token.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// PlainText is the value handed to the client: "<token id>|<secret>".
func PlainText(id int64, secret string) string {
	return strconv.FormatInt(id, 10) + "|" + secret
}

// ParsePlainText splits "<id>|<secret>". A value without a usable id prefix
// is returned whole as the secret with ok false.
func ParsePlainText(plain string) (id int64, secret string, ok bool) {
	idPart, rest, found := strings.Cut(plain, "|")
	if !found {
		return 0, plain, false
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		return 0, plain, false
	}
	return id, rest, true
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
