package server

import (
	"context"
	"net/http"

	"blog-api/handlers"
	"blog-api/metrics"

	"github.com/umakantv/go-utils/httpserver"
)

// route pairs an httpserver route with its handler.
type route struct {
	httpserver.Route
	Handler httpserver.HandlerFunc
}

const (
	authNone   = "none"
	authBearer = "bearer"
)

type routeHandlers struct {
	health *handlers.HealthHandler
	token  *handlers.TokenHandler
	users  *handlers.UserHandler
	posts  *handlers.PostHandler
}

// routes lists every endpoint. Posts are public to read; users are public
// only to sign up.
func routes(h routeHandlers) []route {
	return []route{
		{httpserver.Route{Name: "HealthCheck", Method: "GET", Path: "/health", AuthType: authNone},
			h.health.Health},
		{httpserver.Route{Name: "Metrics", Method: "GET", Path: "/metrics", AuthType: authNone},
			serveMetrics},

		{httpserver.Route{Name: "IssueToken", Method: "POST", Path: "/token", AuthType: authNone},
			handlers.Public(h.token.IssueToken)},

		{httpserver.Route{Name: "ListPosts", Method: "GET", Path: "/v1/posts", AuthType: authNone},
			handlers.Public(h.posts.ListPosts)},
		{httpserver.Route{Name: "CreatePost", Method: "POST", Path: "/v1/posts", AuthType: authBearer},
			handlers.Protected(h.posts.CreatePost)},
		{httpserver.Route{Name: "ShowPost", Method: "GET", Path: "/v1/posts/{id}", AuthType: authNone},
			handlers.Public(h.posts.ShowPost)},
		{httpserver.Route{Name: "UpdatePost", Method: "PUT", Path: "/v1/posts/{id}", AuthType: authBearer},
			handlers.Protected(h.posts.UpdatePost)},
		{httpserver.Route{Name: "PatchPost", Method: "PATCH", Path: "/v1/posts/{id}", AuthType: authBearer},
			handlers.Protected(h.posts.UpdatePost)},
		{httpserver.Route{Name: "DeletePost", Method: "DELETE", Path: "/v1/posts/{id}", AuthType: authBearer},
			handlers.Protected(h.posts.DeletePost)},

		{httpserver.Route{Name: "ListUsers", Method: "GET", Path: "/v1/users", AuthType: authBearer},
			handlers.Protected(h.users.ListUsers)},
		{httpserver.Route{Name: "CreateUser", Method: "POST", Path: "/v1/users", AuthType: authNone},
			handlers.Public(h.users.CreateUser)},
		{httpserver.Route{Name: "ShowUser", Method: "GET", Path: "/v1/users/{id}", AuthType: authBearer},
			handlers.Protected(h.users.ShowUser)},
		{httpserver.Route{Name: "UpdateUser", Method: "PUT", Path: "/v1/users/{id}", AuthType: authBearer},
			handlers.Protected(h.users.UpdateUser)},
		{httpserver.Route{Name: "PatchUser", Method: "PATCH", Path: "/v1/users/{id}", AuthType: authBearer},
			handlers.Protected(h.users.UpdateUser)},
		{httpserver.Route{Name: "DeleteUser", Method: "DELETE", Path: "/v1/users/{id}", AuthType: authBearer},
			handlers.Protected(h.users.DeleteUser)},
	}
}

func serveMetrics(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	metrics.Handler().ServeHTTP(w, r)
}
