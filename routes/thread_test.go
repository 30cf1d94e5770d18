package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	db2 "github.com/sociallyapp/socially-be/db"
	"github.com/sociallyapp/socially-be/middleware"
	"github.com/sociallyapp/socially-be/model"
	"github.com/sociallyapp/socially-be/util"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubDB struct {
	db2.Database

	feed        *model.Feed
	thread      *model.Thread
	threadErr   error
	createdId   string
	createdReq  *db2.CreateThread
	commentReq  *db2.CreateComment
	likes       int
	deleteErr   error
	lastPage    int
	lastPgSize  int
	lastDeleted string
	lastCaller  string
}

func (s *stubDB) GetPosts(ctx context.Context, page, pageSize int) (*model.Feed, error) {
	s.lastPage, s.lastPgSize = page, pageSize
	return s.feed, nil
}

func (s *stubDB) GetThreadById(ctx context.Context, id string) (*model.Thread, error) {
	return s.thread, s.threadErr
}

func (s *stubDB) CreateThread(ctx context.Context, req *db2.CreateThread) (string, error) {
	s.createdReq = req
	return s.createdId, nil
}

func (s *stubDB) CreateComment(ctx context.Context, req *db2.CreateComment) (string, error) {
	s.commentReq = req
	return s.createdId, nil
}

func (s *stubDB) ToggleLike(ctx context.Context, threadId, userId string) (int, error) {
	return s.likes, nil
}

func (s *stubDB) DeleteThread(ctx context.Context, threadId, callerId string) error {
	s.lastDeleted, s.lastCaller = threadId, callerId
	return s.deleteErr
}

// newThreadRouter registers the thread handlers behind a stand-in for the
// session middleware that injects a fixed caller.
func newThreadRouter(store *stubDB, caller *model.User) *gin.Engine {
	r := gin.New()
	if caller != nil {
		r.Use(func(c *gin.Context) { c.Set(middleware.USER_KEY, caller) })
	}
	routes := threadRoutes{db: store, logger: zap.NewNop()}
	r.GET("/threads", util.HandlerWrapper(routes.getPosts, &util.HandlerOpts{}))
	r.GET("/threads/:id", util.HandlerWrapper(routes.getThreadById, &util.HandlerOpts{}))
	r.PUT("/threads", util.HandlerWrapper(routes.createThread, &util.HandlerOpts{}))
	r.POST("/threads/:id/comments", util.HandlerWrapper(routes.addComment, &util.HandlerOpts{}))
	r.POST("/threads/:id/likes", util.HandlerWrapper(routes.toggleLike, &util.HandlerOpts{}))
	r.DELETE("/threads/:id", util.HandlerWrapper(routes.deleteThread, &util.HandlerOpts{}))
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doReq(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestGetPostsRoute(t *testing.T) {
	store := &stubDB{feed: &model.Feed{
		Threads: []*model.Thread{{
			Id:        "t1",
			Text:      "hello",
			Author:    &model.UserSummary{Id: "u1", Username: "alice"},
			Children:  []*model.Reply{},
			LikedBy:   []string{},
			CreatedAt: time.Now(),
		}},
		HasNext: true,
	}}
	r := newThreadRouter(store, nil)

	w, env := doReq(t, r, http.MethodGet, "/threads?page=2&pageSize=5", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, 2, store.lastPage)
	assert.Equal(t, 5, store.lastPgSize)

	var feed model.Feed
	require.NoError(t, json.Unmarshal(env.Data, &feed))
	assert.True(t, feed.HasNext)
	require.Len(t, feed.Threads, 1)
	assert.Equal(t, "t1", feed.Threads[0].Id)
}

func TestGetPostsRouteCapsPageSize(t *testing.T) {
	store := &stubDB{feed: &model.Feed{Threads: []*model.Thread{}}}
	r := newThreadRouter(store, nil)

	w, _ := doReq(t, r, http.MethodGet, "/threads?pageSize=500", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, maxPageSize, store.lastPgSize)
}

func TestGetPostsRouteRejectsBadPage(t *testing.T) {
	store := &stubDB{}
	r := newThreadRouter(store, nil)

	w, env := doReq(t, r, http.MethodGet, "/threads?page=banana", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
}

func TestGetThreadByIdRouteNotFound(t *testing.T) {
	store := &stubDB{threadErr: db2.NotFound("thread", "missing")}
	r := newThreadRouter(store, nil)

	w, env := doReq(t, r, http.MethodGet, "/threads/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}

func TestCreateThreadRoute(t *testing.T) {
	store := &stubDB{createdId: "t1"}
	r := newThreadRouter(store, &model.User{Id: "u1"})

	w, env := doReq(t, r, http.MethodPut, "/threads",
		`{"text": "<script>alert(1)</script>hello", "communityId": "c1"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	require.NotNil(t, store.createdReq)
	assert.Equal(t, "hello", store.createdReq.Text, "markup is stripped before storage")
	assert.Equal(t, "u1", store.createdReq.AuthorId)
	assert.Equal(t, "c1", store.createdReq.CommunityId)
}

func TestCreateThreadRouteRejectsEmptyText(t *testing.T) {
	store := &stubDB{}
	r := newThreadRouter(store, &model.User{Id: "u1"})

	w, env := doReq(t, r, http.MethodPut, "/threads", `{"text": "<b></b>  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Nil(t, store.createdReq)
}

func TestAddCommentRoute(t *testing.T) {
	store := &stubDB{createdId: "r1"}
	r := newThreadRouter(store, &model.User{Id: "u2"})

	w, env := doReq(t, r, http.MethodPost, "/threads/t1/comments", `{"text": "hi back"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	require.NotNil(t, store.commentReq)
	assert.Equal(t, "t1", store.commentReq.ParentId)
	assert.Equal(t, "u2", store.commentReq.AuthorId)
}

func TestToggleLikeRoute(t *testing.T) {
	store := &stubDB{likes: 3}
	r := newThreadRouter(store, &model.User{Id: "u2"})

	w, env := doReq(t, r, http.MethodPost, "/threads/t1/likes", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Likes int `json:"likes"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 3, data.Likes)
}

func TestDeleteThreadRouteForbidden(t *testing.T) {
	store := &stubDB{deleteErr: db2.ErrForbidden}
	r := newThreadRouter(store, &model.User{Id: "u2"})

	w, env := doReq(t, r, http.MethodDelete, "/threads/t1", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "t1", store.lastDeleted)
	assert.Equal(t, "u2", store.lastCaller)
}

func TestThreadRoutesRequireSession(t *testing.T) {
	store := &stubDB{}
	r := gin.New()
	group := r.Group("")
	AddThreadRoutes(group, store, nil, zap.NewNop())

	w, env := doReq(t, r, http.MethodPut, "/threads", `{"text": "hello"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)
}
