package routes

import (
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/sociallyapp/socially-be/db"
	"github.com/sociallyapp/socially-be/middleware"
	"github.com/sociallyapp/socially-be/util"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type threadRoutes struct {
	db     db.Database
	logger *zap.Logger
}

func AddThreadRoutes(group *gin.RouterGroup, database db.Database, authClient *auth.Client, logger *zap.Logger) {
	routes := threadRoutes{db: database, logger: logger}

	public := group.Group("/threads")
	public.GET("", util.HandlerWrapper(routes.getPosts, &util.HandlerOpts{}))
	public.GET("/:id", util.HandlerWrapper(routes.getThreadById, &util.HandlerOpts{}))

	authed := group.Group("/threads", middleware.Auth(database, authClient, middleware.RequireSession()))
	authed.PUT("", util.HandlerWrapper(routes.createThread, &util.HandlerOpts{}))
	authed.POST("/:id/comments", util.HandlerWrapper(routes.addComment, &util.HandlerOpts{}))
	authed.POST("/:id/likes", util.HandlerWrapper(routes.toggleLike, &util.HandlerOpts{}))
	authed.DELETE("/:id", util.HandlerWrapper(routes.deleteThread, &util.HandlerOpts{}))
}

type createThreadReq struct {
	Text        string `json:"text"`
	CommunityId string `json:"communityId"`
}

func (tr *threadRoutes) createThread(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createThreadReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	text := strings.TrimSpace(util.XSSSanitize(req.Text))
	if text == "" {
		return nil, &util.HTTPError{Status: 400, Message: "thread text must not be empty"}
	}
	id, err := tr.db.CreateThread(c, &db.CreateThread{
		Text:        text,
		AuthorId:    middleware.MustGetUser(c).Id,
		CommunityId: req.CommunityId,
	})
	if err != nil {
		tr.logger.Error("failed to create thread",
			zap.String("op", "createThread"), zap.Error(err))
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{"id": id}, nil
}

type addCommentReq struct {
	Text string `json:"text"`
}

func (tr *threadRoutes) addComment(c *gin.Context) (interface{}, *util.HTTPError) {
	var req addCommentReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	text := strings.TrimSpace(util.XSSSanitize(req.Text))
	if text == "" {
		return nil, &util.HTTPError{Status: 400, Message: "comment text must not be empty"}
	}
	id, err := tr.db.CreateComment(c, &db.CreateComment{
		ParentId: c.Param("id"),
		Text:     text,
		AuthorId: middleware.MustGetUser(c).Id,
	})
	if err != nil {
		tr.logger.Error("failed to add comment",
			zap.String("op", "addComment"),
			zap.String("threadId", c.Param("id")),
			zap.Error(err))
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{"id": id}, nil
}

func (tr *threadRoutes) getPosts(c *gin.Context) (interface{}, *util.HTTPError) {
	page, httpErr := util.ParsePositiveInt(c.Query("page"), 1)
	if httpErr != nil {
		return nil, httpErr
	}
	pageSize, httpErr := util.ParsePositiveInt(c.Query("pageSize"), defaultPageSize)
	if httpErr != nil {
		return nil, httpErr
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	feed, err := tr.db.GetPosts(c, page, pageSize)
	if err != nil {
		tr.logger.Error("failed to fetch posts",
			zap.String("op", "getPosts"), zap.Int("page", page), zap.Error(err))
		return nil, util.BuildDbHTTPErr(err)
	}
	return feed, nil
}

func (tr *threadRoutes) getThreadById(c *gin.Context) (interface{}, *util.HTTPError) {
	thread, err := tr.db.GetThreadById(c, c.Param("id"))
	if err != nil {
		tr.logger.Warn("failed to fetch thread",
			zap.String("op", "getThreadById"),
			zap.String("threadId", c.Param("id")),
			zap.Error(err))
		return nil, util.BuildDbHTTPErr(err)
	}
	return thread, nil
}

func (tr *threadRoutes) toggleLike(c *gin.Context) (interface{}, *util.HTTPError) {
	likes, err := tr.db.ToggleLike(c, c.Param("id"), middleware.MustGetUser(c).Id)
	if err != nil {
		tr.logger.Error("failed to toggle like",
			zap.String("op", "toggleLike"),
			zap.String("threadId", c.Param("id")),
			zap.Error(err))
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{"likes": likes}, nil
}

func (tr *threadRoutes) deleteThread(c *gin.Context) (interface{}, *util.HTTPError) {
	err := tr.db.DeleteThread(c, c.Param("id"), middleware.MustGetUser(c).Id)
	if err != nil {
		tr.logger.Warn("failed to delete thread",
			zap.String("op", "deleteThread"),
			zap.String("threadId", c.Param("id")),
			zap.Error(err))
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}
