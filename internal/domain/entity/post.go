package entity

import "time"

// Post is a user-authored entry on the board.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatorID int64     `json:"creatorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
