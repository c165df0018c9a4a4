package entity

import "time"

type Profile struct {
	ID        uint      `json:"id"`
	OwnerID   uint      `json:"owner_id"`
	Owner     string    `json:"owner"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
