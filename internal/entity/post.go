package entity

import "time"

type Post struct {
	ID        uint      `json:"id"`
	OwnerID   uint      `json:"owner_id"`
	Owner     string    `json:"owner"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostFilter narrows List. Zero values mean no filter, and a zero Limit returns
// every matching post.
type PostFilter struct {
	OwnerID uint
	Limit   int
	Offset  int
}
