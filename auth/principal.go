package auth

import (
	"context"
	"strconv"

	"github.com/umakantv/go-utils/httpserver"
)

// Principal is the caller of a request. The zero value is an anonymous caller.
type Principal struct {
	UserID     int64
	TokenID    int64
	DeviceName string
	Name       string
	Email      string
}

// Anonymous is the principal of an unauthenticated request.
var Anonymous = Principal{}

func (p Principal) Authenticated() bool {
	return p.UserID != 0
}

// RequestAuth converts the principal into what CheckAuth hands to httpserver.
// Claims is always a map[string]interface{}.
func (p Principal) RequestAuth() httpserver.RequestAuth {
	return httpserver.RequestAuth{
		Type:   "bearer",
		Client: "user:" + strconv.FormatInt(p.UserID, 10),
		Claims: map[string]interface{}{
			"user_id":     p.UserID,
			"token_id":    p.TokenID,
			"device_name": p.DeviceName,
			"name":        p.Name,
			"email":       p.Email,
		},
	}
}

// FromRequestAuth rebuilds the principal that RequestAuth produced.
func FromRequestAuth(ra *httpserver.RequestAuth) (Principal, bool) {
	if ra == nil {
		return Anonymous, false
	}
	claims, ok := ra.Claims.(map[string]interface{})
	if !ok {
		return Anonymous, false
	}
	userID := claimInt(claims["user_id"])
	if userID == 0 {
		return Anonymous, false
	}
	p := Principal{
		UserID:  userID,
		TokenID: claimInt(claims["token_id"]),
	}
	p.DeviceName, _ = claims["device_name"].(string)
	p.Name, _ = claims["name"].(string)
	p.Email, _ = claims["email"].(string)
	return p, true
}

// FromContext returns the principal httpserver attached to the request context.
func FromContext(ctx context.Context) (Principal, bool) {
	return FromRequestAuth(httpserver.GetRequestAuth(ctx))
}

func claimInt(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
