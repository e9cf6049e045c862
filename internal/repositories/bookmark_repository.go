package repositories

import (
	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/models"
)

// BookmarkRepository defines the interface for bookmark data operations
type BookmarkRepository interface {
	CreateBookmark(bookmark *models.Bookmark) error
	DeleteBookmark(userID, tweetID uint) error
	GetBookmarksByUserID(userID uint) ([]models.Bookmark, error)
	HasUserBookmarkedTweet(userID, tweetID uint) (bool, error)
}

// PostgresBookmarkRepository implements BookmarkRepository for PostgreSQL
type PostgresBookmarkRepository struct {
	db *gorm.DB
}

// NewPostgresBookmarkRepository creates a new PostgresBookmarkRepository
func NewPostgresBookmarkRepository(db *gorm.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

func (r *PostgresBookmarkRepository) CreateBookmark(bookmark *models.Bookmark) error {
	return r.db.Create(bookmark).Error
}

// DeleteBookmark removes a user's bookmark of a tweet. Returns
// gorm.ErrRecordNotFound when the bookmark does not exist.
func (r *PostgresBookmarkRepository) DeleteBookmark(userID, tweetID uint) error {
	res := r.db.Where("user_id = ? AND tweet_id = ?", userID, tweetID).Delete(&models.Bookmark{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetBookmarksByUserID lists a user's bookmarks newest first with the
// bookmarked tweet and its author preloaded. The bookmarked-posts view
// keeps this order (bookmark time, not tweet time).
func (r *PostgresBookmarkRepository) GetBookmarksByUserID(userID uint) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := r.db.Preload("Tweet.User.Profile").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error
	return bookmarks, err
}

func (r *PostgresBookmarkRepository) HasUserBookmarkedTweet(userID, tweetID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Bookmark{}).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Count(&count).Error
	return count > 0, err
}
