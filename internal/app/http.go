package app

import (
	"context"
	"net/http"

	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/auth/cache"
	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/auth/provider/facebook"
	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/auth/resolver"
	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/auth/userstore"
	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/config"
	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/middleware"
	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/session"

	"github.com/gin-gonic/gin"
)

const logoutPath = "/auth/logout"

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	sessionStore := session.NewRedisStore(infra.Redis.Client)
	identityCache := cache.NewMemory()
	users := userstore.NewPostgres(infra.DB)

	fbClient, err := facebook.New(cfg.FacebookGraphURL)
	if err != nil {
		return nil, nil, err
	}

	tokenResolver := resolver.NewTokenResolver(fbClient, users, identityCache)

	authMiddleware := middleware.NewAuthMiddleware(
		tokenResolver,
		sessionStore,
		middleware.Options{LogoutPath: logoutPath},
	)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	// ----------------------------
	// Public Routes
	// ----------------------------

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Authenticated Routes
	// ----------------------------

	authed := router.Group("/")
	authed.Use(authMiddleware.Handle())

	authed.POST("/auth/login", func(c *gin.Context) {
		user, _ := middleware.UserFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"status": "authenticated",
			"user":   user,
		})
	})

	// Logout is recognized by the middleware itself; the handler only
	// acknowledges.
	authed.POST(logoutPath, func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	authed.GET("/api/me", func(c *gin.Context) {
		user, ok := middleware.UserFromContext(c.Request.Context())
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": middleware.ErrorLoginRequired})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		return infra.DB.Close()
	}, nil
}
