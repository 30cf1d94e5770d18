package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	db2 "github.com/sociallyapp/socially-be/db"
	"github.com/sociallyapp/socially-be/model"
	"go.uber.org/zap"
)

type stubThreadDB struct {
	db2.ThreadDatabase
	replies []*model.ReplyWithParent
	err     error
}

func (s *stubThreadDB) GetRepliesToUser(ctx context.Context, userId string) ([]*model.ReplyWithParent, error) {
	return s.replies, s.err
}

func TestGetActivityForUser(t *testing.T) {
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store := &stubThreadDB{replies: []*model.ReplyWithParent{
		{
			Reply: &model.Reply{
				Id:       "r1",
				Text:     "hi back",
				ParentId: "t1",
				Author: &model.UserSummary{
					Id:       "u2",
					Name:     "Bob",
					Username: "bob",
					Image:    "https://img.example/bob.png",
				},
				CreatedAt: at,
			},
			Parent: &model.ParentSummary{Id: "t1", Text: "hello world"},
		},
	}}

	activities := GetActivityForUser(context.Background(), store, zap.NewNop(), "u1")
	require.Len(t, activities, 1)
	activity := activities[0]
	assert.Equal(t, `replied to your thread: "hello world"`, activity.Message)
	assert.Equal(t, "t1", activity.ThreadId)
	assert.Equal(t, "r1", activity.ReplyId)
	assert.Equal(t, at, activity.Time)
	assert.Equal(t, "Bob", activity.User.Name)
}

func TestGetActivityForUserDefaults(t *testing.T) {
	store := &stubThreadDB{replies: []*model.ReplyWithParent{
		{
			Reply: &model.Reply{
				Id:       "r1",
				ParentId: "t1",
				Author:   &model.UserSummary{Id: "u2"},
			},
			Parent: &model.ParentSummary{Id: "t1", Text: "hello"},
		},
	}}

	activities := GetActivityForUser(context.Background(), store, zap.NewNop(), "u1")
	require.Len(t, activities, 1)
	assert.Equal(t, "Someone", activities[0].User.Name)
	assert.Contains(t, activities[0].User.Image, "dicebear")
}

func TestGetActivityForUserStoreFailure(t *testing.T) {
	store := &stubThreadDB{err: errors.New("connection reset")}

	activities := GetActivityForUser(context.Background(), store, zap.NewNop(), "u1")
	assert.NotNil(t, activities)
	assert.Empty(t, activities)
}
