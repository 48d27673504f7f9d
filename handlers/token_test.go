package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"blog-api/auth"
	"blog-api/models"
)

func TestIssueToken(t *testing.T) {
	env := newTestEnv(t)
	ana := env.createUser(t, "Ana", "ana@x.com", "secret123")

	rec := call(t, env.tokenH.IssueToken, auth.Anonymous, "POST", "/token", 0, map[string]string{
		"email":       "ana@x.com",
		"password":    "secret123",
		"device_name": "laptop",
	})
	assertStatus(t, rec, http.StatusOK)
	assertJSON(t, rec)

	var resp models.TokenResponse
	decode(t, rec, &resp)
	if resp.Token == "" {
		t.Fatal("empty token")
	}
	want := models.UserAttributes{ID: ana.ID, Name: "Ana", Email: "ana@x.com"}
	if resp.Data.Attributes != want {
		t.Errorf("attributes = %+v, want %+v", resp.Data.Attributes, want)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Errorf("response mentions password: %s", rec.Body.String())
	}

	// The token authenticates its owner.
	p, err := auth.NewResolver(env.users, env.tokens).Resolve(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if p.UserID != ana.ID || p.DeviceName != "laptop" {
		t.Errorf("principal = %+v", p)
	}
}

func TestIssueToken_BadCredentialsAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Ana", "ana@x.com", "secret123")

	wrongPassword := call(t, env.tokenH.IssueToken, auth.Anonymous, "POST", "/token", 0, map[string]string{
		"email": "ana@x.com", "password": "wrong", "device_name": "laptop",
	})
	unknownEmail := call(t, env.tokenH.IssueToken, auth.Anonymous, "POST", "/token", 0, map[string]string{
		"email": "nobody@x.com", "password": "secret123", "device_name": "laptop",
	})

	assertStatus(t, wrongPassword, http.StatusUnauthorized)
	assertStatus(t, unknownEmail, http.StatusUnauthorized)
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Errorf("bodies differ:\n%s\n%s", wrongPassword.Body.String(), unknownEmail.Body.String())
	}
	assertMessage(t, wrongPassword, msgBadCredentials)
}

func TestIssueToken_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body interface{}
		want []string
	}{
		{"empty body", nil, []string{"device_name", "email", "password"}},
		{"empty object", map[string]string{}, []string{"device_name", "email", "password"}},
		{"bad email", map[string]string{"email": "not-an-email", "password": "x", "device_name": "d"}, []string{"email"}},
		{"missing device", map[string]string{"email": "ana@x.com", "password": "x"}, []string{"device_name"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, env.tokenH.IssueToken, auth.Anonymous, "POST", "/token", 0, tt.body)
			assertStatus(t, rec, http.StatusUnprocessableEntity)
			if got := validationFields(t, rec); !sameFields(got, tt.want) {
				t.Errorf("fields = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIssueToken_MalformedJSON(t *testing.T) {
	env := newTestEnv(t)
	rec := call(t, env.tokenH.IssueToken, auth.Anonymous, "POST", "/token", 0, "{not json")
	assertStatus(t, rec, http.StatusBadRequest)
	assertJSON(t, rec)
	assertMessage(t, rec, "Invalid JSON")
}
