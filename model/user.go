package model

import "time"

// User holds the local profile for an identity-provider account. The id is the
// provider's stable user id; credentials never touch this service.
type User struct {
	Id        string    `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Name      string    `db:"name" json:"name"`
	Bio       string    `db:"bio" json:"bio,omitempty"`
	Image     string    `db:"image" json:"image"`
	Onboarded bool      `db:"onboarded" json:"onboarded"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// UserSummary is the public slice of a profile embedded in threads, replies,
// search results, and activity entries.
type UserSummary struct {
	Id       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Username string `db:"username" json:"username"`
	Image    string `db:"image" json:"image"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{
		Id:       u.Id,
		Name:     u.Name,
		Username: u.Username,
		Image:    u.Image,
	}
}
