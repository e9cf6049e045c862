package models

import "time"

// Retweet re-shares a tweet, optionally with a short quote. A user may
// retweet a given tweet at most once.
type Retweet struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_tweet_retweet"`
	TweetID   uint      `json:"tweet_id" gorm:"index;uniqueIndex:idx_user_tweet_retweet"`
	Quote     string    `json:"quote" gorm:"size:100"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	User  User  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Tweet Tweet `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

type CreateRetweetRequest struct {
	Quote string `json:"quote" validate:"omitempty,max=100"`
}
