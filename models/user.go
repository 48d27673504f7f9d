package models

import "time"

// User represents a user in the system
// Password is stored hashed (bcrypt); never returned in JSON responses
type User struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"` // Hashed; omitted from JSON
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateUserRequest is the allow-list for POST /v1/users
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"` // Plaintext; hashed before insert
}

// UpdateUserRequest is the allow-list for PUT/PATCH /v1/users/{id}
// A nil field is left untouched
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UserAttributes is the summary returned alongside an issued token
type UserAttributes struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Attributes returns the password-free summary of the user
func (u User) Attributes() UserAttributes {
	return UserAttributes{ID: u.ID, Name: u.Name, Email: u.Email}
}
