package routes

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/sociallyapp/socially-be/db"
	"github.com/sociallyapp/socially-be/middleware"
	"github.com/sociallyapp/socially-be/services"
	"github.com/sociallyapp/socially-be/util"
	"go.uber.org/zap"
)

const maxAvatarBytes = 5 << 20

type userRoutes struct {
	db     db.Database
	bucket *services.StorageBucket
	logger *zap.Logger
}

func AddUserRoutes(group *gin.RouterGroup, database db.Database, authClient *auth.Client, bucket *services.StorageBucket, logger *zap.Logger) {
	routes := userRoutes{db: database, bucket: bucket, logger: logger}

	users := group.Group("/users")
	users.GET("/:id", util.HandlerWrapper(routes.getUser, &util.HandlerOpts{}))
	users.GET("/:id/threads", util.HandlerWrapper(routes.getUserThreads, &util.HandlerOpts{}))
	users.PUT("",
		middleware.Auth(database, authClient, middleware.RequireSessionOnly()),
		util.HandlerWrapper(routes.upsertUser, &util.HandlerOpts{}))
	users.POST("/avatar",
		middleware.Auth(database, authClient, middleware.RequireSessionOnly()),
		util.HandlerWrapper(routes.uploadAvatar, &util.HandlerOpts{}))
}

type upsertUserReq struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
}

// upsertUser is the onboarding submission: it creates or updates the caller's
// profile and flips the onboarded flag.
func (ur *userRoutes) upsertUser(c *gin.Context) (interface{}, *util.HTTPError) {
	var req upsertUserReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, &util.HTTPError{Status: http.StatusBadRequest, Message: "username and name are required"}
	}
	user, err := ur.db.UpsertUser(c, &db.UpsertUser{
		Id:       middleware.MustGetToken(c).UID,
		Username: req.Username,
		Name:     util.XSSSanitize(req.Name),
		Bio:      util.XSSSanitize(req.Bio),
		Image:    req.Image,
	})
	if err != nil {
		ur.logger.Error("failed to upsert user",
			zap.String("op", "upsertUser"),
			zap.String("userId", middleware.MustGetToken(c).UID),
			zap.Error(err))
		return nil, util.BuildDbHTTPErr(err)
	}
	return user, nil
}

func (ur *userRoutes) getUser(c *gin.Context) (interface{}, *util.HTTPError) {
	user, err := ur.db.GetUser(c, c.Param("id"))
	if err != nil {
		ur.logger.Error("failed to fetch user",
			zap.String("op", "getUser"),
			zap.String("userId", c.Param("id")),
			zap.Error(err))
		return nil, util.BuildDbHTTPErr(err)
	}
	if user == nil {
		return nil, &util.HTTPError{Status: http.StatusNotFound, Message: "user not found"}
	}
	return user, nil
}

func (ur *userRoutes) getUserThreads(c *gin.Context) (interface{}, *util.HTTPError) {
	threads, err := ur.db.GetUserThreads(c, c.Param("id"))
	if err != nil {
		ur.logger.Error("failed to fetch user threads",
			zap.String("op", "getUserThreads"),
			zap.String("userId", c.Param("id")),
			zap.Error(err))
		return nil, util.BuildDbHTTPErr(err)
	}
	return threads, nil
}

func (ur *userRoutes) uploadAvatar(c *gin.Context) (interface{}, *util.HTTPError) {
	if ur.bucket == nil {
		return nil, &util.HTTPError{Status: http.StatusServiceUnavailable, Message: "uploads are not configured"}
	}
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, &util.HTTPError{Status: http.StatusBadRequest, Message: "image file is required"}
	}
	if fileHeader.Size > maxAvatarBytes {
		return nil, &util.HTTPError{Status: http.StatusBadRequest, Message: "image too large"}
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, &util.HTTPError{Status: http.StatusBadRequest, Message: "could not read image"}
	}
	defer file.Close()

	url, err := ur.bucket.UploadAvatar(c, middleware.MustGetToken(c).UID,
		fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		ur.logger.Error("failed to upload avatar",
			zap.String("op", "uploadAvatar"),
			zap.String("userId", middleware.MustGetToken(c).UID),
			zap.Error(err))
		return nil, &util.HTTPError{Status: http.StatusInternalServerError, Message: "upload failed"}
	}
	return gin.H{"url": url}, nil
}
