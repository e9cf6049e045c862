package repositories

import (
	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/models"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(userID, tweetID uint) error
	GetLikesByTweetID(tweetID uint) ([]models.Like, error)
	GetLikesCountByTweetID(tweetID uint) (int64, error)
	HasUserLikedTweet(userID, tweetID uint) (bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts a like. A duplicate (user, tweet) pair surfaces as
// gorm.ErrDuplicatedKey; the unique index is the only race protection.
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

// DeleteLike removes a user's like of a tweet. Returns
// gorm.ErrRecordNotFound when the like does not exist.
func (r *PostgresLikeRepository) DeleteLike(userID, tweetID uint) error {
	res := r.db.Where("user_id = ? AND tweet_id = ?", userID, tweetID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetLikesByTweetID retrieves all likes of a tweet with likers preloaded
func (r *PostgresLikeRepository) GetLikesByTweetID(tweetID uint) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.Preload("User.Profile").
		Where("tweet_id = ?", tweetID).
		Order("created_at DESC").
		Find(&likes).Error
	return likes, err
}

func (r *PostgresLikeRepository) GetLikesCountByTweetID(tweetID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("tweet_id = ?", tweetID).Count(&count).Error
	return count, err
}

func (r *PostgresLikeRepository) HasUserLikedTweet(userID, tweetID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Count(&count).Error
	return count > 0, err
}
