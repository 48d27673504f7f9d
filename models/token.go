package models

import "time"

// PersonalAccessToken is a bearer token bound to a device name
// Token holds the hex SHA-256 of the secret; the plaintext is never stored
type PersonalAccessToken struct {
	ID         int64      `json:"id" db:"id"`
	UserID     int64      `json:"user_id" db:"user_id"`
	Name       string     `json:"name" db:"name"`
	Token      string     `json:"-" db:"token"`
	LastUsedAt *time.Time `json:"last_used_at" db:"last_used_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// TokenRequest is the body of POST /token
type TokenRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	DeviceName string `json:"device_name" validate:"required"`
}

// TokenResponse is returned once, at issuance
type TokenResponse struct {
	Data  TokenResponseData `json:"data"`
	Token string            `json:"token"`
}

// TokenResponseData nests the user summary as {"attributes": {...}}
type TokenResponseData struct {
	Attributes UserAttributes `json:"attributes"`
}
