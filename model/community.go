package model

import "time"

type Community struct {
	Id        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Image     string    `db:"image" json:"image,omitempty"`
	CreatedBy string    `db:"created_by" json:"createdBy"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// CommunitySummary tags a thread with the community it was posted to.
type CommunitySummary struct {
	Id    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Image string `db:"image" json:"image,omitempty"`
}

func (c *Community) Summary() *CommunitySummary {
	return &CommunitySummary{
		Id:    c.Id,
		Name:  c.Name,
		Image: c.Image,
	}
}

// Membership records that a user belongs to a community. Storage only; no
// moderation or posting restrictions hang off of it.
type Membership struct {
	CommunityId string    `db:"community_id" json:"communityId"`
	UserId      string    `db:"user_id" json:"userId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
