package repositories

import (
	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/models"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsByTweetID(tweetID uint) ([]models.Comment, error)
	DeleteCommentTree(id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Preload("User.Profile").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByTweetID returns every comment on a tweet (top-level and
// replies) in one query, insertion order. Callers build the reply tree.
func (r *PostgresCommentRepository) GetCommentsByTweetID(tweetID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("User.Profile").
		Where("tweet_id = ?", tweetID).
		Order("id ASC").
		Find(&comments).Error
	return comments, err
}

// DeleteCommentTree removes a comment and its whole reply subtree,
// walking the tree level by level inside one transaction.
func (r *PostgresCommentRepository) DeleteCommentTree(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		doomed := []uint{id}
		frontier := []uint{id}
		for len(frontier) > 0 {
			var children []uint
			if err := tx.Model(&models.Comment{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &children).Error; err != nil {
				return err
			}
			doomed = append(doomed, children...)
			frontier = children
		}
		return tx.Delete(&models.Comment{}, doomed).Error
	})
}
