package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"salaryscope/internal/accounts"
	"salaryscope/internal/search"
	"salaryscope/internal/session"
	"salaryscope/internal/shared/config"
	"salaryscope/internal/shared/server/middleware"
	"salaryscope/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config          config.Config
	Sessions        *session.Manager
	AccountsHandler *accounts.Handler
	SearchHandler   *search.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env != "dev" && deps.Config.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"AUTH":    {Rate: 1, Burst: 10},
				"DEFAULT": {Rate: 5, Burst: 30},
			},
			GroupFor: func(c *gin.Context) string {
				if strings.HasPrefix(c.FullPath(), "/api/v1/auth") {
					return "AUTH"
				}
				return "DEFAULT"
			},
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	deps.AccountsHandler.RegisterRoutes(api)

	protected := api.Group("", session.RequireSession(deps.Sessions))
	deps.SearchHandler.RegisterRoutes(protected, api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
