package models

import "time"

// Bookmark saves a tweet to a user's private reading list; unique per
// (user, tweet).
type Bookmark struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_tweet_bookmark"`
	TweetID   uint      `json:"tweet_id" gorm:"index;uniqueIndex:idx_user_tweet_bookmark"`
	CreatedAt time.Time `json:"created_at"`

	User  User  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Tweet Tweet `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
