package app

import (
	"context"
	"fmt"

	"github.com/sociallyapp/socially-be/db"
	"github.com/sociallyapp/socially-be/model"
	"github.com/sociallyapp/socially-be/util"
	"go.uber.org/zap"
)

// GetActivityForUser derives the notification feed: every reply other users
// left on userId's threads, newest first. Replies the user wrote under their
// own threads are excluded at the query. The feed is a best-effort read; any
// store failure is logged and yields an empty list instead of an error page.
func GetActivityForUser(ctx context.Context, database db.ThreadDatabase, logger *zap.Logger, userId string) []*model.Activity {
	replies, err := database.GetRepliesToUser(ctx, userId)
	if err != nil {
		logger.Error("failed to derive activity",
			zap.String("op", "GetActivityForUser"),
			zap.String("userId", userId),
			zap.Error(err))
		return []*model.Activity{}
	}

	activities := make([]*model.Activity, len(replies))
	for i, reply := range replies {
		activities[i] = &model.Activity{
			User:     displayableAuthor(reply.Author),
			Message:  fmt.Sprintf("replied to your thread: %q", reply.Parent.Text),
			ThreadId: reply.Parent.Id,
			ReplyId:  reply.Id,
			Time:     reply.CreatedAt,
		}
	}
	return activities
}

// displayableAuthor fills in defaults for profiles that never finished
// onboarding, so the feed renders without holes.
func displayableAuthor(author *model.UserSummary) *model.UserSummary {
	if author == nil {
		author = &model.UserSummary{}
	}
	out := *author
	if out.Name == "" {
		out.Name = "Someone"
	}
	if out.Image == "" {
		out.Image = util.Avatar(out.Id)
	}
	return &out
}
