package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	db2 "github.com/sociallyapp/socially-be/db"
)

func TestCreateCommunityAddsCreatorAsMember(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()
	seedUser(t, store, "u1", "alice")

	communityId, err := store.CreateCommunity(ctx, &db2.CreateCommunity{
		Name:      "gophers",
		Image:     "https://example.com/g.png",
		CreatedBy: "u1",
	})
	require.NoError(t, err)

	community, err := store.GetCommunityById(ctx, communityId)
	require.NoError(t, err)
	assert.Equal(t, "gophers", community.Name)
	assert.Equal(t, "u1", community.CreatedBy)

	communities, err := store.GetCommunitiesForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, communities, 1)
	assert.Equal(t, communityId, communities[0].Id)
}

func TestCreateCommunityRequiresCreator(t *testing.T) {
	store := newTestDB(t)

	_, err := store.CreateCommunity(context.Background(), &db2.CreateCommunity{
		Name:      "gophers",
		CreatedBy: "ghost",
	})
	assert.True(t, errors.Is(err, db2.ErrNotFound))
}

func TestGetCommunityByIdMissing(t *testing.T) {
	store := newTestDB(t)

	_, err := store.GetCommunityById(context.Background(), "missing")
	assert.True(t, errors.Is(err, db2.ErrNotFound))
}

func TestMembershipJoinAndLeave(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()
	seedUser(t, store, "u1", "alice")
	seedUser(t, store, "u2", "bob")
	communityId, err := store.CreateCommunity(ctx, &db2.CreateCommunity{Name: "gophers", CreatedBy: "u1"})
	require.NoError(t, err)

	require.NoError(t, store.AddMember(ctx, communityId, "u2"))
	require.NoError(t, store.AddMember(ctx, communityId, "u2"), "joining twice is a no-op")

	communities, err := store.GetCommunitiesForUser(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, communities, 1)

	require.NoError(t, store.RemoveMember(ctx, communityId, "u2"))
	require.NoError(t, store.RemoveMember(ctx, communityId, "u2"), "leaving twice is a no-op")

	communities, err = store.GetCommunitiesForUser(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, communities)
}

func TestAddMemberMissingCommunity(t *testing.T) {
	store := newTestDB(t)
	seedUser(t, store, "u1", "alice")

	err := store.AddMember(context.Background(), "missing", "u1")
	assert.True(t, errors.Is(err, db2.ErrNotFound))
}
