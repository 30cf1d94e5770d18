package app

import (
	"context"
	"time"

	"github.com/sociallyapp/socially-be/cache"
	"github.com/sociallyapp/socially-be/db"
	"github.com/sociallyapp/socially-be/model"
	"go.uber.org/zap"
)

const (
	SuggestedUserLimit = 5
	suggestedTTL       = time.Minute
)

// GetSuggestedUsers samples onboarded users for the sidebar, excluding the
// caller when known. Results sit behind a short redis TTL when a cache is
// wired; without one every call hits the store. Failures degrade to an empty
// list.
func GetSuggestedUsers(ctx context.Context, database db.UserDatabase, store *cache.Cache, logger *zap.Logger, excludeId string, limit int) []*model.UserSummary {
	key := "suggested-users:" + excludeId

	var users []*model.UserSummary
	if found, err := store.GetJSON(ctx, key, &users); err == nil && found {
		return users
	}

	users, err := database.GetSuggestedUsers(ctx, excludeId, limit)
	if err != nil {
		logger.Error("failed to fetch suggested users",
			zap.String("op", "GetSuggestedUsers"),
			zap.String("excludeId", excludeId),
			zap.Error(err))
		return []*model.UserSummary{}
	}
	if err := store.SetJSON(ctx, key, users, suggestedTTL); err != nil {
		logger.Warn("failed to cache suggested users", zap.Error(err))
	}
	return users
}
