package models

import "time"

// Tweet is an authored post. A tweet owns its likes, comments, retweets
// and bookmarks; deleting it removes all of them.
type Tweet struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Content   string    `json:"content" gorm:"size:1000"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// CreateTweetRequest defines the request body for creating a new tweet.
// Content and image are individually optional; at least one is required.
type CreateTweetRequest struct {
	Content string `json:"content" validate:"omitempty,max=1000"`
	Image   string `json:"image" validate:"omitempty"`
}

// UpdateTweetRequest defines the request body for editing a tweet.
type UpdateTweetRequest struct {
	Content string `json:"content" validate:"omitempty,max=1000"`
	Image   string `json:"image" validate:"omitempty"`
}
