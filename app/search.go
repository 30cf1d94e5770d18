package app

import (
	"context"
	"strings"

	"github.com/sociallyapp/socially-be/db"
	"github.com/sociallyapp/socially-be/model"
	"go.uber.org/zap"
)

const searchLimit = 10

type SearchResults struct {
	Users   []*model.UserSummary   `json:"users"`
	Threads []*model.ThreadSummary `json:"threads"`
}

// Search runs the user and thread prefix searches and merges the results. A
// blank query returns empty sets without touching the store; either search
// failing degrades to an empty set for that half rather than failing the page.
func Search(ctx context.Context, database db.Database, logger *zap.Logger, query string) *SearchResults {
	results := &SearchResults{
		Users:   []*model.UserSummary{},
		Threads: []*model.ThreadSummary{},
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return results
	}

	users, err := database.SearchUsers(ctx, query, searchLimit)
	if err != nil {
		logger.Error("user search failed",
			zap.String("op", "Search"),
			zap.String("query", query),
			zap.Error(err))
	} else {
		results.Users = users
	}

	threads, err := database.SearchThreads(ctx, query, searchLimit)
	if err != nil {
		logger.Error("thread search failed",
			zap.String("op", "Search"),
			zap.String("query", query),
			zap.Error(err))
	} else {
		results.Threads = threads
	}
	return results
}
