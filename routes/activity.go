package routes

import (
	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/sociallyapp/socially-be/app"
	"github.com/sociallyapp/socially-be/db"
	"github.com/sociallyapp/socially-be/middleware"
	"github.com/sociallyapp/socially-be/util"
	"go.uber.org/zap"
)

type activityRoutes struct {
	db     db.Database
	logger *zap.Logger
}

func AddActivityRoutes(group *gin.RouterGroup, database db.Database, authClient *auth.Client, logger *zap.Logger) {
	routes := activityRoutes{db: database, logger: logger}
	activity := group.Group("/activity", middleware.Auth(database, authClient, middleware.RequireSession()))
	activity.GET("", util.HandlerWrapper(routes.getActivity, &util.HandlerOpts{}))
}

func (ar *activityRoutes) getActivity(c *gin.Context) (interface{}, *util.HTTPError) {
	return app.GetActivityForUser(c, ar.db, ar.logger, middleware.MustGetUser(c).Id), nil
}
