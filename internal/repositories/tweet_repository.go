package repositories

import (
	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/models"
)

// TweetRepository defines the interface for tweet data operations
type TweetRepository interface {
	CreateTweet(tweet *models.Tweet) error
	GetTweetByID(id uint) (*models.Tweet, error)
	GetTweetsByAuthorIDs(authorIDs []uint) ([]models.Tweet, error)
	UpdateTweet(tweet *models.Tweet) error
	DeleteTweet(id uint) error
}

// PostgresTweetRepository implements TweetRepository for PostgreSQL
type PostgresTweetRepository struct {
	db *gorm.DB
}

// NewPostgresTweetRepository creates a new PostgresTweetRepository
func NewPostgresTweetRepository(db *gorm.DB) *PostgresTweetRepository {
	return &PostgresTweetRepository{db: db}
}

func (r *PostgresTweetRepository) CreateTweet(tweet *models.Tweet) error {
	return r.db.Create(tweet).Error
}

// GetTweetByID retrieves a tweet with its author and profile
func (r *PostgresTweetRepository) GetTweetByID(id uint) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.db.Preload("User.Profile").First(&tweet, id).Error; err != nil {
		return nil, err
	}
	return &tweet, nil
}

// GetTweetsByAuthorIDs retrieves every tweet authored by the given users,
// oldest first so later merge sorting is deterministic.
func (r *PostgresTweetRepository) GetTweetsByAuthorIDs(authorIDs []uint) ([]models.Tweet, error) {
	var tweets []models.Tweet
	if len(authorIDs) == 0 {
		return tweets, nil
	}
	err := r.db.Preload("User.Profile").
		Where("user_id IN ?", authorIDs).
		Order("id ASC").
		Find(&tweets).Error
	return tweets, err
}

func (r *PostgresTweetRepository) UpdateTweet(tweet *models.Tweet) error {
	return r.db.Save(tweet).Error
}

// DeleteTweet removes a tweet and everything it owns (likes, comments
// including replies, retweets, bookmarks) in one transaction. The FK
// constraints mirror this for out-of-band deletes on Postgres.
func (r *PostgresTweetRepository) DeleteTweet(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tweet_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tweet_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tweet_id = ?", id).Delete(&models.Retweet{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tweet_id = ?", id).Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tweet{}, id).Error
	})
}
