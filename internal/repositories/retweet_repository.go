package repositories

import (
	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/models"
)

// RetweetRepository defines the interface for retweet data operations
type RetweetRepository interface {
	CreateRetweet(retweet *models.Retweet) error
	DeleteRetweet(userID, tweetID uint) error
	GetRetweetsByAuthorIDs(authorIDs []uint) ([]models.Retweet, error)
	GetRetweetsByTweetID(tweetID uint) ([]models.Retweet, error)
	HasUserRetweeted(userID, tweetID uint) (bool, error)
}

// PostgresRetweetRepository implements RetweetRepository for PostgreSQL
type PostgresRetweetRepository struct {
	db *gorm.DB
}

// NewPostgresRetweetRepository creates a new PostgresRetweetRepository
func NewPostgresRetweetRepository(db *gorm.DB) *PostgresRetweetRepository {
	return &PostgresRetweetRepository{db: db}
}

func (r *PostgresRetweetRepository) CreateRetweet(retweet *models.Retweet) error {
	return r.db.Create(retweet).Error
}

// DeleteRetweet removes a user's retweet of a tweet. Returns
// gorm.ErrRecordNotFound when there is nothing to remove.
func (r *PostgresRetweetRepository) DeleteRetweet(userID, tweetID uint) error {
	res := r.db.Where("user_id = ? AND tweet_id = ?", userID, tweetID).Delete(&models.Retweet{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetRetweetsByAuthorIDs retrieves retweets by the given users with the
// original tweet and both authors preloaded, oldest first.
func (r *PostgresRetweetRepository) GetRetweetsByAuthorIDs(authorIDs []uint) ([]models.Retweet, error) {
	var retweets []models.Retweet
	if len(authorIDs) == 0 {
		return retweets, nil
	}
	err := r.db.Preload("User.Profile").Preload("Tweet.User.Profile").
		Where("user_id IN ?", authorIDs).
		Order("id ASC").
		Find(&retweets).Error
	return retweets, err
}

// GetRetweetsByTweetID lists the retweets of one tweet, newest first.
func (r *PostgresRetweetRepository) GetRetweetsByTweetID(tweetID uint) ([]models.Retweet, error) {
	var retweets []models.Retweet
	err := r.db.Preload("User.Profile").Preload("Tweet.User.Profile").
		Where("tweet_id = ?", tweetID).
		Order("created_at DESC").
		Find(&retweets).Error
	return retweets, err
}

func (r *PostgresRetweetRepository) HasUserRetweeted(userID, tweetID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Retweet{}).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Count(&count).Error
	return count > 0, err
}
