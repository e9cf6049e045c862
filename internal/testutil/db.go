// Package testutil provides shared test fixtures.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chirper-app/backend/internal/models"
)

// NewDB opens a fresh in-memory SQLite database with the full schema
// migrated. Each test gets its own database; TranslateError is on so
// unique-index violations surface as gorm.ErrDuplicatedKey like they do
// against Postgres.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:test-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// NewUser inserts a user with an active profile and returns it.
func NewUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed-password",
		Profile: models.Profile{
			Name:   username,
			Status: models.ProfileStatusActive,
		},
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create test user %s: %v", username, err)
	}
	return user
}

// NewTweet inserts a tweet authored by user and returns it.
func NewTweet(t *testing.T, db *gorm.DB, user *models.User, content string) *models.Tweet {
	t.Helper()

	tweet := &models.Tweet{UserID: user.ID, Content: content}
	if err := db.Create(tweet).Error; err != nil {
		t.Fatalf("create test tweet: %v", err)
	}
	tweet.User = *user
	return tweet
}
