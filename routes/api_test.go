package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sociallyapp/socially-be/app"
	"github.com/sociallyapp/socially-be/model"
	"go.uber.org/zap"
)

type searchStubDB struct {
	stubDB
	users   []*model.UserSummary
	threads []*model.ThreadSummary
}

func (s *searchStubDB) SearchUsers(ctx context.Context, prefix string, limit int) ([]*model.UserSummary, error) {
	return s.users, nil
}

func (s *searchStubDB) SearchThreads(ctx context.Context, prefix string, limit int) ([]*model.ThreadSummary, error) {
	return s.threads, nil
}

func (s *searchStubDB) GetSuggestedUsers(ctx context.Context, excludeId string, limit int) ([]*model.UserSummary, error) {
	return s.users, nil
}

func newAPIRouter(store *searchStubDB) *gin.Engine {
	r := gin.New()
	AddAPIRoutes(r.Group(""), store, nil, nil, zap.NewNop())
	return r
}

// Both /api endpoints run without an Authorization header; the session is
// optional there.
func TestSearchRoute(t *testing.T) {
	store := &searchStubDB{
		users:   []*model.UserSummary{{Id: "u1", Username: "alice"}},
		threads: []*model.ThreadSummary{{Id: "t1", Text: "aliasing in Go"}},
	}
	r := newAPIRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=ali", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var results app.SearchResults
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results.Users, 1)
	assert.Equal(t, "alice", results.Users[0].Username)
	require.Len(t, results.Threads, 1)
	assert.Equal(t, "t1", results.Threads[0].Id)
}

func TestSearchRouteBlankQuery(t *testing.T) {
	r := newAPIRouter(&searchStubDB{})

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var results app.SearchResults
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	assert.Empty(t, results.Users)
	assert.Empty(t, results.Threads)
}

func TestSuggestedUsersRoute(t *testing.T) {
	store := &searchStubDB{
		users: []*model.UserSummary{
			{Id: "u2", Username: "bob"},
			{Id: "u3", Username: "carol"},
		},
	}
	r := newAPIRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var users []*model.UserSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 2)
}
