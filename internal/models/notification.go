package models

import "time"

// Notification verbs. The first five carry a sender; the rest are
// system-generated account events with no sender.
const (
	VerbFollowed    = "followed"
	VerbCommented   = "commented"
	VerbMentioned   = "mentioned"
	VerbRetweeted   = "retweeted"
	VerbLiked       = "liked"
	VerbWelcome     = "welcome"
	VerbChanged     = "changed"
	VerbReset       = "reset"
	VerbDeactivated = "deactivated"
	VerbReactivated = "reactivated"
)

// Notification is a fanout record. The composite unique index makes
// fanout idempotent per logical event: re-triggering the same action
// hits the constraint and is dropped. Postgres keeps NULL sender rows
// out of that dedup, which only affects single-shot system verbs.
type Notification struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   *uint     `json:"sender_id" gorm:"index;uniqueIndex:idx_notification_event"`
	ReceiverID uint      `json:"receiver_id" gorm:"index;uniqueIndex:idx_notification_event"`
	Verb       string    `json:"verb" gorm:"size:20;uniqueIndex:idx_notification_event"`
	TargetType *string   `json:"target_type" gorm:"size:20;uniqueIndex:idx_notification_event"`
	TargetID   *uint     `json:"target_id" gorm:"uniqueIndex:idx_notification_event"`
	IsRead     bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`

	Sender   *User `json:"-" gorm:"foreignKey:SenderID"`
	Receiver User  `json:"-" gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE"`
}

// NotificationView is the read shape: the display message is rendered
// from the verb at read time, never stored.
type NotificationView struct {
	ID         uint      `json:"id"`
	Sender     *Author   `json:"sender"`
	Verb       string    `json:"verb"`
	TargetType *string   `json:"target_type"`
	TargetID   *uint     `json:"target_id"`
	Message    string    `json:"message"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}
