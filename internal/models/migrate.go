package models

// All lists every persisted model for AutoMigrate, in dependency order.
func All() []any {
	return []any{
		&User{},
		&Profile{},
		&Tweet{},
		&Retweet{},
		&Comment{},
		&Like{},
		&Bookmark{},
		&Follow{},
		&Mention{},
		&Notification{},
		&PasswordResetToken{},
	}
}
