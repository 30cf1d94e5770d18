package routes

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/sociallyapp/socially-be/db"
	"github.com/sociallyapp/socially-be/middleware"
	"github.com/sociallyapp/socially-be/util"
	"go.uber.org/zap"
)

type communityRoutes struct {
	db     db.Database
	logger *zap.Logger
}

func AddCommunityRoutes(group *gin.RouterGroup, database db.Database, authClient *auth.Client, logger *zap.Logger) {
	routes := communityRoutes{db: database, logger: logger}

	public := group.Group("/communities")
	public.GET("/:id", util.HandlerWrapper(routes.getCommunityById, &util.HandlerOpts{}))
	public.GET("/:id/threads", util.HandlerWrapper(routes.getCommunityThreads, &util.HandlerOpts{}))

	authed := group.Group("/communities", middleware.Auth(database, authClient, middleware.RequireSession()))
	authed.PUT("", util.HandlerWrapper(routes.createCommunity, &util.HandlerOpts{}))
	authed.POST("/:id/members", util.HandlerWrapper(routes.joinCommunity, &util.HandlerOpts{}))
	authed.DELETE("/:id/members", util.HandlerWrapper(routes.leaveCommunity, &util.HandlerOpts{}))
}

type createCommunityReq struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (cr *communityRoutes) createCommunity(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createCommunityReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	name := strings.TrimSpace(util.XSSSanitize(req.Name))
	if name == "" {
		return nil, &util.HTTPError{Status: http.StatusBadRequest, Message: "community name is required"}
	}
	id, err := cr.db.CreateCommunity(c, &db.CreateCommunity{
		Name:      name,
		Image:     req.Image,
		CreatedBy: middleware.MustGetUser(c).Id,
	})
	if err != nil {
		cr.logger.Error("failed to create community",
			zap.String("op", "createCommunity"), zap.Error(err))
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{"id": id}, nil
}

func (cr *communityRoutes) getCommunityById(c *gin.Context) (interface{}, *util.HTTPError) {
	community, err := cr.db.GetCommunityById(c, c.Param("id"))
	if err != nil {
		cr.logger.Warn("failed to fetch community",
			zap.String("op", "getCommunityById"),
			zap.String("communityId", c.Param("id")),
			zap.Error(err))
		return nil, util.BuildDbHTTPErr(err)
	}
	return community, nil
}

func (cr *communityRoutes) getCommunityThreads(c *gin.Context) (interface{}, *util.HTTPError) {
	threads, err := cr.db.GetCommunityThreads(c, c.Param("id"))
	if err != nil {
		cr.logger.Error("failed to fetch community threads",
			zap.String("op", "getCommunityThreads"),
			zap.String("communityId", c.Param("id")),
			zap.Error(err))
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{"threads": threads}, nil
}

func (cr *communityRoutes) joinCommunity(c *gin.Context) (interface{}, *util.HTTPError) {
	if err := cr.db.AddMember(c, c.Param("id"), middleware.MustGetUser(c).Id); err != nil {
		cr.logger.Error("failed to join community",
			zap.String("op", "joinCommunity"),
			zap.String("communityId", c.Param("id")),
			zap.Error(err))
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (cr *communityRoutes) leaveCommunity(c *gin.Context) (interface{}, *util.HTTPError) {
	if err := cr.db.RemoveMember(c, c.Param("id"), middleware.MustGetUser(c).Id); err != nil {
		cr.logger.Error("failed to leave community",
			zap.String("op", "leaveCommunity"),
			zap.String("communityId", c.Param("id")),
			zap.Error(err))
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}
