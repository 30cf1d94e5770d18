package db

import (
	"context"
	"database/sql"

	"github.com/sociallyapp/socially-be/model"
)

type Database interface {
	UserDatabase
	ThreadDatabase
	CommunityDatabase
	GetSQLDB() *sql.DB
	Close() error
}

type UpsertUser struct {
	Id       string
	Username string
	Name     string
	Bio      string
	Image    string
}

type CreateThread struct {
	Text        string
	AuthorId    string
	CommunityId string // optional; empty means no community tag
}

type CreateComment struct {
	ParentId string
	Text     string
	AuthorId string
}

type CreateCommunity struct {
	Name      string
	Image     string
	CreatedBy string
}

type UserDatabase interface {
	// GetUser returns nil, nil when no profile exists for the id.
	GetUser(ctx context.Context, id string) (*model.User, error)
	// UpsertUser creates or updates the profile keyed on the auth id and marks
	// it onboarded. The username is lowercased before storage.
	UpsertUser(ctx context.Context, req *UpsertUser) (*model.User, error)
	// GetSuggestedUsers returns up to limit onboarded users other than
	// excludeId, in random order.
	GetSuggestedUsers(ctx context.Context, excludeId string, limit int) ([]*model.UserSummary, error)
	// SearchUsers prefix-matches name or username, case-insensitive.
	SearchUsers(ctx context.Context, prefix string, limit int) ([]*model.UserSummary, error)
}

type ThreadDatabase interface {
	CreateThread(ctx context.Context, req *CreateThread) (threadId string, err error)
	CreateComment(ctx context.Context, req *CreateComment) (commentId string, err error)
	// GetPosts returns one page of top-level threads, newest first, fully
	// populated, plus whether a further page exists.
	GetPosts(ctx context.Context, page, pageSize int) (*model.Feed, error)
	GetThreadById(ctx context.Context, id string) (*model.Thread, error)
	// ToggleLike adds the like when absent and removes it when present,
	// returning the resulting like count.
	ToggleLike(ctx context.Context, threadId, userId string) (likes int, err error)
	// DeleteThread removes the thread and its direct children. Only the author
	// may delete; ErrForbidden otherwise.
	DeleteThread(ctx context.Context, threadId, callerId string) error
	GetUserThreads(ctx context.Context, userId string) (*model.UserThreads, error)
	GetCommunityThreads(ctx context.Context, communityId string) ([]*model.Thread, error)
	SearchThreads(ctx context.Context, prefix string, limit int) ([]*model.ThreadSummary, error)
	// GetRepliesToUser returns every reply left on the user's threads by other
	// users, newest first, with the parent thread's text for display.
	GetRepliesToUser(ctx context.Context, userId string) ([]*model.ReplyWithParent, error)
}

type CommunityDatabase interface {
	CreateCommunity(ctx context.Context, req *CreateCommunity) (communityId string, err error)
	GetCommunityById(ctx context.Context, id string) (*model.Community, error)
	// AddMember and RemoveMember are idempotent.
	AddMember(ctx context.Context, communityId, userId string) error
	RemoveMember(ctx context.Context, communityId, userId string) error
	GetCommunitiesForUser(ctx context.Context, userId string) ([]*model.Community, error)
}
