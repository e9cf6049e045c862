package models

import "time"

// Like marks a tweet as liked by a user; unique per (user, tweet).
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_tweet_like"`
	TweetID   uint      `json:"tweet_id" gorm:"index;uniqueIndex:idx_user_tweet_like"`
	CreatedAt time.Time `json:"created_at"`

	User  User  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Tweet Tweet `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
