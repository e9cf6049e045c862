package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/models"
)

// ResetTokenRepository defines the interface for password-reset tokens
type ResetTokenRepository interface {
	CreateToken(token *models.PasswordResetToken) error
	GetValidToken(token string) (*models.PasswordResetToken, error)
	MarkUsed(token *models.PasswordResetToken) error
}

type postgresResetTokenRepository struct {
	db *gorm.DB
}

func NewPostgresResetTokenRepository(db *gorm.DB) ResetTokenRepository {
	return &postgresResetTokenRepository{db: db}
}

func (r *postgresResetTokenRepository) CreateToken(token *models.PasswordResetToken) error {
	return r.db.Create(token).Error
}

// GetValidToken looks up an unexpired, unused token.
func (r *postgresResetTokenRepository) GetValidToken(token string) (*models.PasswordResetToken, error) {
	var reset models.PasswordResetToken
	err := r.db.Where("token = ? AND used_at IS NULL AND expires_at > ?", token, time.Now()).
		First(&reset).Error
	if err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *postgresResetTokenRepository) MarkUsed(token *models.PasswordResetToken) error {
	now := time.Now()
	token.UsedAt = &now
	return r.db.Save(token).Error
}
