// Package httpapi is the HTTP transport of the server: a gin engine with an
// ordered middleware pipeline (recovery, request id, logging, CORS, rate
// limiting, then authentication and role checks on protected groups) in
// front of the JSON handlers.
package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/server/ratelimit"
	"github.com/dmitrijs2005/authgate/internal/server/services"
	"github.com/gin-gonic/gin"
)

// NewRouter assembles the engine. Stage order is fixed: a rejected request
// never reaches a later stage.
func NewRouter(svc *services.UserService, limiter *ratelimit.Limiter, corsOrigin string, log logging.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		respondError(c, http.StatusInternalServerError, CodeInternal, "Internal server error")
	}))
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(CORS(corsOrigin))
	r.Use(RateLimit(limiter))

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, CodeNotFound, "Route not found")
	})

	h := NewHandler(svc, log)

	api := r.Group("/api")
	api.GET("/health", h.Health)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)
	authGroup.POST("/logout", AuthRequired(svc), h.Logout)

	users := api.Group("/users", AuthRequired(svc))
	users.GET("/profile", h.GetProfile)
	users.PUT("/profile", h.UpdateProfile)

	admin := users.Group("", AdminRequired())
	admin.GET("", h.ListUsers)
	admin.GET("/stats", h.Stats)
	admin.DELETE("/:id", h.DeleteUser)

	return r
}
