package routes

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/sociallyapp/socially-be/app"
	"github.com/sociallyapp/socially-be/cache"
	"github.com/sociallyapp/socially-be/db"
	"github.com/sociallyapp/socially-be/middleware"
	"go.uber.org/zap"
)

// apiRoutes serves the plain-JSON endpoints the web client fetches directly:
// search and suggested users. Both are best-effort reads and answer 200 with
// empty results on internal failure.
type apiRoutes struct {
	db     db.Database
	cache  *cache.Cache
	logger *zap.Logger
}

func AddAPIRoutes(group *gin.RouterGroup, database db.Database, authClient *auth.Client, cacheStore *cache.Cache, logger *zap.Logger) {
	routes := apiRoutes{db: database, cache: cacheStore, logger: logger}
	api := group.Group("/api", middleware.Auth(database, authClient, middleware.SessionOptional()))
	api.GET("/search", routes.search)
	api.GET("/users", routes.suggestedUsers)
}

func (ar *apiRoutes) search(c *gin.Context) {
	c.JSON(http.StatusOK, app.Search(c, ar.db, ar.logger, c.Query("q")))
}

func (ar *apiRoutes) suggestedUsers(c *gin.Context) {
	users := app.GetSuggestedUsers(c, ar.db, ar.cache, ar.logger,
		middleware.GetUserIdMaybe(c), app.SuggestedUserLimit)
	c.JSON(http.StatusOK, users)
}
