package model

import "time"

// Thread is a fully populated top-level post: author and community resolved,
// first-level replies with their authors, and the ids of everyone who liked it.
type Thread struct {
	Id        string            `json:"id"`
	Text      string            `json:"text"`
	Author    *UserSummary      `json:"author"`
	Community *CommunitySummary `json:"community,omitempty"`
	Children  []*Reply          `json:"children"`
	LikedBy   []string          `json:"likedBy"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Reply is a first-level child thread with its author resolved.
type Reply struct {
	Id        string       `json:"id"`
	Text      string       `json:"text"`
	Author    *UserSummary `json:"author"`
	ParentId  string       `json:"parentId"`
	CreatedAt time.Time    `json:"createdAt"`
}

// ParentSummary references the thread a reply was left on. Text is truncated
// for display.
type ParentSummary struct {
	Id   string `json:"id"`
	Text string `json:"text"`
}

// ReplyWithParent is a reply shown on a profile page, carrying a summary of
// the thread it answers.
type ReplyWithParent struct {
	*Reply
	Parent *ParentSummary `json:"parent"`
}

// Feed is one page of the home feed. HasNext reports whether a further page
// exists.
type Feed struct {
	Threads []*Thread `json:"threads"`
	HasNext bool      `json:"hasNext"`
}

// UserThreads groups everything a user has authored: their top-level threads
// and their replies to other threads.
type UserThreads struct {
	Threads []*Thread          `json:"threads"`
	Replies []*ReplyWithParent `json:"replies"`
}

// ThreadSummary is a search hit.
type ThreadSummary struct {
	Id   string `db:"id" json:"id"`
	Text string `db:"text" json:"text"`
}
