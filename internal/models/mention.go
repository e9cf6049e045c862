package models

import "time"

// Mention records that a user was @-mentioned in a tweet, comment or
// retweet quote. Unique per (mentioned user, target) so rescanning the
// same text never duplicates it.
type Mention struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	ActorID         uint      `json:"actor_id" gorm:"index"`
	MentionedUserID uint      `json:"mentioned_user_id" gorm:"index;uniqueIndex:idx_mentioned_target"`
	TargetType      string    `json:"target_type" gorm:"size:20;uniqueIndex:idx_mentioned_target"`
	TargetID        uint      `json:"target_id" gorm:"uniqueIndex:idx_mentioned_target"`
	CreatedAt       time.Time `json:"created_at"`

	Actor         User `json:"-" gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE"`
	MentionedUser User `json:"-" gorm:"foreignKey:MentionedUserID;constraint:OnDelete:CASCADE"`
}

// MentionView is the read shape for a user's mentions list.
type MentionView struct {
	Actor          string    `json:"actor"`
	ContentObject  string    `json:"content_object"`
	ContentPreview string    `json:"content_preview"`
	ContentID      uint      `json:"content_id"`
	CreatedAt      time.Time `json:"created_at"`
}
