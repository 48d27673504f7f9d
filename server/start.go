package server

import (
	"blog-api/auth"
	cachepackage "blog-api/cache"
	"blog-api/config"
	"blog-api/database"
	"blog-api/datastore"
	"blog-api/handlers"

	"github.com/jmoiron/sqlx"
	"github.com/umakantv/go-utils/cache"
	"github.com/umakantv/go-utils/httpserver"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// StartServer wires the stores, token issuer and controllers, then serves
// until the listener fails.
func StartServer(cfg *config.Config) error {
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})

	logger.Info("Starting Blog API...")

	dbConn, err := database.InitializeDatabase(cfg.Database)
	if err != nil {
		logger.Error("Database initialization failed", zap.Error(err))
		return err
	}
	defer dbConn.Close()

	readCache, err := cachepackage.InitializeCache(cfg.Cache)
	if err != nil {
		logger.Error("Cache initialization failed", zap.Error(err))
		return err
	}
	defer readCache.Close()

	h, resolver := wire(dbConn, readCache, cfg.Auth.BcryptCost)

	// CheckAuth attaches the caller on bearer routes; handlers.Protected
	// turns a missing caller into 401.
	server := httpserver.New(cfg.Server.Port, resolver.CheckAuth)

	for _, rt := range routes(h) {
		server.Register(rt.Route, rt.Handler)
	}

	logger.Info("Blog API started", zap.String("port", cfg.Server.Port))
	logger.Info("Token endpoint: POST /token")
	logger.Info("API endpoints: /v1/posts, /v1/users")

	if err := server.Start(); err != nil {
		logger.Error("Server failed to start", zap.Error(err))
		return err
	}
	return nil
}

// wire builds the stores, the token issuer and resolver, and the handlers
// over an open database and cache.
func wire(dbConn *sqlx.DB, c cache.Cache, bcryptCost int) (routeHandlers, *auth.Resolver) {
	users := datastore.NewUserStore(dbConn)
	posts := datastore.NewPostStore(dbConn)
	tokens := datastore.NewTokenStore(dbConn)

	issuer := auth.NewIssuer(users, tokens, bcryptCost)
	resolver := auth.NewResolver(users, tokens)

	return routeHandlers{
		health: handlers.NewHealthHandler(dbConn),
		token:  handlers.NewTokenHandler(issuer),
		users:  handlers.NewUserHandler(users, c, bcryptCost),
		posts:  handlers.NewPostHandler(posts, users, c),
	}, resolver
}
