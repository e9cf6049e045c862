package models

import "time"

// PasswordResetToken is a single-use, time-limited token mailed to a
// user who requested a password reset.
type PasswordResetToken struct {
	ID        uint       `json:"-" gorm:"primaryKey"`
	Token     string     `json:"-" gorm:"size:36;uniqueIndex"`
	UserID    uint       `json:"-" gorm:"index"`
	ExpiresAt time.Time  `json:"-"`
	UsedAt    *time.Time `json:"-"`
	CreatedAt time.Time  `json:"-"`

	User User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
