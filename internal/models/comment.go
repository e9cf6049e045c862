package models

import "time"

// Comment is a comment on a tweet. A non-nil ParentID makes it a reply;
// replies form a tree and a reply's parent must belong to the same tweet.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	TweetID   uint      `json:"tweet_id" gorm:"index"`
	ParentID  *uint     `json:"parent" gorm:"index"`
	Content   string    `json:"content" gorm:"size:1000"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`

	User   User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Tweet  Tweet    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Parent *Comment `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// CreateCommentRequest defines the request body for commenting on a tweet.
// Content and image are individually optional; at least one is required.
// Parent, when set, references a comment on the same tweet.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"omitempty,max=1000"`
	Image   string `json:"image" validate:"omitempty"`
	Parent  *uint  `json:"parent" validate:"omitempty"`
}
