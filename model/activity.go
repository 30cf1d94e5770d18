package model

import "time"

// Activity is one entry of a user's notification feed: somebody replied to one
// of their threads.
type Activity struct {
	User     *UserSummary `json:"user"`
	Message  string       `json:"message"`
	ThreadId string       `json:"threadId"`
	ReplyId  string       `json:"replyId"`
	Time     time.Time    `json:"time"`
}
