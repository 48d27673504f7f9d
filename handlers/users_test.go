package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"blog-api/auth"
	"blog-api/models"
)

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)

	rec := call(t, env.userH.CreateUser, auth.Anonymous, "POST", "/v1/users", 0, map[string]string{
		"name": "Ana", "email": "ana@x.com", "password": "secret123",
	})
	assertStatus(t, rec, http.StatusCreated)
	assertJSON(t, rec)

	var body map[string]interface{}
	decode(t, rec, &body)
	if body["name"] != "Ana" || body["email"] != "ana@x.com" {
		t.Errorf("body = %v", body)
	}
	if _, ok := body["password"]; ok {
		t.Error("password echoed in response")
	}

	stored, err := env.users.FindByEmail(context.Background(), "ana@x.com")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if stored.Password == "secret123" || !auth.CheckPassword(stored.Password, "secret123") {
		t.Errorf("stored password %q is not a bcrypt hash of the input", stored.Password)
	}
}

func TestCreateUser_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body interface{}
		want []string
	}{
		{"empty", map[string]string{}, []string{"email", "name", "password"}},
		{"invalid email", map[string]string{"name": "Ana", "email": "invalid_email", "password": "secret123"}, []string{"email"}},
		{"short password", map[string]string{"name": "Ana", "email": "ana@x.com", "password": "short"}, []string{"password"}},
		{"taken email", map[string]string{"name": "Dup", "email": "tester@x.com", "password": "secret123"}, []string{"email"}},
		{"long name", map[string]string{"name": strings.Repeat("a", 256), "email": "ana@x.com", "password": "secret123"}, []string{"name"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, env.userH.CreateUser, auth.Anonymous, "POST", "/v1/users", 0, tt.body)
			assertStatus(t, rec, http.StatusUnprocessableEntity)
			if got := validationFields(t, rec); !sameFields(got, tt.want) {
				t.Errorf("fields = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCreateUser_IgnoresUnknownFields(t *testing.T) {
	env := newTestEnv(t)

	rec := call(t, env.userH.CreateUser, auth.Anonymous, "POST", "/v1/users", 0, map[string]interface{}{
		"id": 999, "name": "Ana", "email": "ana@x.com", "password": "secret123", "is_admin": true,
	})
	assertStatus(t, rec, http.StatusCreated)

	var user models.User
	decode(t, rec, &user)
	if user.ID == 999 {
		t.Error("client-supplied id was applied")
	}
}

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Ana", "ana@x.com", "secret123")

	rec := call(t, env.userH.ListUsers, env.actingAs, "GET", "/v1/users", 0, nil)
	assertStatus(t, rec, http.StatusOK)
	assertJSON(t, rec)

	var users []models.User
	decode(t, rec, &users)
	if len(users) != 2 {
		t.Fatalf("len = %d, want 2", len(users))
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("list exposes password")
	}

	// A new user shows up once the cached list is invalidated.
	call(t, env.userH.CreateUser, auth.Anonymous, "POST", "/v1/users", 0, map[string]string{
		"name": "Bo", "email": "bo@x.com", "password": "secret123",
	})
	rec = call(t, env.userH.ListUsers, env.actingAs, "GET", "/v1/users", 0, nil)
	decode(t, rec, &users)
	if len(users) != 3 {
		t.Errorf("len after create = %d, want 3", len(users))
	}
}

func TestShowUser(t *testing.T) {
	env := newTestEnv(t)
	ana := env.createUser(t, "Ana", "ana@x.com", "secret123")

	rec := call(t, env.userH.ShowUser, env.actingAs, "GET", "/v1/users/x", ana.ID, nil)
	assertStatus(t, rec, http.StatusOK)

	var user models.User
	decode(t, rec, &user)
	if user.ID != ana.ID || user.Name != "Ana" || user.Email != "ana@x.com" {
		t.Errorf("user = %+v", user)
	}
}

func TestUser_NotFound(t *testing.T) {
	env := newTestEnv(t)

	ops := map[string]Operation{
		"show":    env.userH.ShowUser,
		"update":  env.userH.UpdateUser,
		"destroy": env.userH.DeleteUser,
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			rec := call(t, op, env.actingAs, "GET", "/v1/users/42", 42, map[string]string{"name": "x"})
			assertStatus(t, rec, http.StatusNotFound)
			assertJSON(t, rec)
			assertMessage(t, rec, msgUserNotFound)

			rec = callWithRawID(t, op, env.actingAs, "GET", "abc")
			assertStatus(t, rec, http.StatusNotFound)
		})
	}
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(t)
	ana := env.createUser(t, "Ana", "ana@x.com", "secret123")

	rec := call(t, env.userH.UpdateUser, env.actingAs, "PUT", "/v1/users/x", ana.ID, map[string]interface{}{
		"id":         ana.ID,
		"name":       "Ana Maria",
		"email":      "ana@x.com",
		"created_at": "2020-01-01T00:00:00Z",
	})
	assertStatus(t, rec, http.StatusOK)

	var user models.User
	decode(t, rec, &user)
	if user.Name != "Ana Maria" || user.Email != "ana@x.com" {
		t.Errorf("user = %+v", user)
	}

	// PATCH with only a password keeps the other fields.
	rec = call(t, env.userH.UpdateUser, env.actingAs, "PATCH", "/v1/users/x", ana.ID, map[string]string{
		"password": "new-secret",
	})
	assertStatus(t, rec, http.StatusOK)
	stored, _ := env.users.Find(context.Background(), ana.ID)
	if stored.Name != "Ana Maria" {
		t.Errorf("name = %q after password change", stored.Name)
	}
	if !auth.CheckPassword(stored.Password, "new-secret") {
		t.Error("password not re-hashed")
	}
}

func TestUpdateUser_ShowReflectsChange(t *testing.T) {
	env := newTestEnv(t)
	ana := env.createUser(t, "Ana", "ana@x.com", "secret123")

	// Show, then update and show again.
	call(t, env.userH.ShowUser, env.actingAs, "GET", "/v1/users/x", ana.ID, nil)
	call(t, env.userH.UpdateUser, env.actingAs, "PATCH", "/v1/users/x", ana.ID, map[string]string{"name": "Renamed"})

	rec := call(t, env.userH.ShowUser, env.actingAs, "GET", "/v1/users/x", ana.ID, nil)
	var user models.User
	decode(t, rec, &user)
	if user.Name != "Renamed" {
		t.Errorf("name = %q, want Renamed", user.Name)
	}
}

func TestUpdateUser_Validation(t *testing.T) {
	env := newTestEnv(t)
	ana := env.createUser(t, "Ana", "ana@x.com", "secret123")

	tests := []struct {
		name string
		body map[string]string
		want []string
	}{
		{"invalid email", map[string]string{"email": "invalid_email"}, []string{"email"}},
		{"taken email", map[string]string{"email": "tester@x.com"}, []string{"email"}},
		{"blank name", map[string]string{"name": ""}, []string{"name"}},
		{"short password", map[string]string{"password": "short"}, []string{"password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, env.userH.UpdateUser, env.actingAs, "PUT", "/v1/users/x", ana.ID, tt.body)
			assertStatus(t, rec, http.StatusUnprocessableEntity)
			if got := validationFields(t, rec); !sameFields(got, tt.want) {
				t.Errorf("fields = %v, want %v", got, tt.want)
			}
		})
	}

	// Keeping one's own email is not a conflict.
	rec := call(t, env.userH.UpdateUser, env.actingAs, "PUT", "/v1/users/x", ana.ID, map[string]string{"email": "ana@x.com"})
	assertStatus(t, rec, http.StatusOK)
}

func TestDeleteUser(t *testing.T) {
	env := newTestEnv(t)
	ana := env.createUser(t, "Ana", "ana@x.com", "secret123")
	post := env.createPost(t, "t", "c", ana.ID)

	rec := call(t, env.userH.DeleteUser, env.actingAs, "DELETE", "/v1/users/x", ana.ID, nil)
	assertStatus(t, rec, http.StatusNoContent)
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}

	rec = call(t, env.userH.ShowUser, env.actingAs, "GET", "/v1/users/x", ana.ID, nil)
	assertStatus(t, rec, http.StatusNotFound)

	rec = call(t, env.postH.ShowPost, auth.Anonymous, "GET", "/v1/posts/x", post.ID, nil)
	assertStatus(t, rec, http.StatusNotFound)
}

func TestShowUser_DeletedElsewhere(t *testing.T) {
	env := newTestEnv(t)
	ana := env.createUser(t, "Ana", "ana@x.com", "secret123")

	rec := call(t, env.userH.ShowUser, env.actingAs, "GET", "/v1/users/x", ana.ID, nil)
	assertStatus(t, rec, http.StatusOK)

	// A delete that skips this handler's invalidation, as on another replica.
	if err := env.users.Delete(context.Background(), ana.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	rec = call(t, env.userH.ShowUser, env.actingAs, "GET", "/v1/users/x", ana.ID, nil)
	assertStatus(t, rec, http.StatusNotFound)
	assertMessage(t, rec, msgUserNotFound)
}
