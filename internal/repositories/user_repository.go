package repositories

import (
	"strings"

	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/models"
)

// UserRepository defines the interface for user and profile data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUsersByUsernames(usernames []string) ([]models.User, error)
	UpdateUser(user *models.User) error
	UpdateProfile(profile *models.Profile) error
	SearchUsers(query string) ([]models.User, error)
	CountTweets(userID uint) (int64, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates the user and its profile in one transaction. The
// email is lowercase-normalized and the display name defaults to the
// username.
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Profile.Name == "" {
		user.Profile.Name = user.Username
	}
	if user.Profile.Status == "" {
		user.Profile.Status = models.ProfileStatusActive
	}
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user with its profile by ID
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Profile").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user with its profile by exact username
func (r *PostgresUserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Profile").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by lowercase-normalized email
func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	email = strings.ToLower(strings.TrimSpace(email))
	if err := r.db.Preload("Profile").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUsersByUsernames resolves a batch of usernames in one query.
// Matching is exact and case-sensitive; unknown names simply drop out.
func (r *PostgresUserRepository) GetUsersByUsernames(usernames []string) ([]models.User, error) {
	var users []models.User
	if len(usernames) == 0 {
		return users, nil
	}
	err := r.db.Where("username IN ?", usernames).Find(&users).Error
	return users, err
}

// UpdateUser updates an existing user
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// UpdateProfile updates an existing profile
func (r *PostgresUserRepository) UpdateProfile(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// SearchUsers searches for users by username or display name
func (r *PostgresUserRepository) SearchUsers(query string) ([]models.User, error) {
	var users []models.User
	pattern := "%" + query + "%"
	err := r.db.Preload("Profile").
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Where("LOWER(users.username) LIKE LOWER(?) OR LOWER(profiles.name) LIKE LOWER(?)", pattern, pattern).
		Find(&users).Error
	return users, err
}

// CountTweets counts the tweets authored by a user
func (r *PostgresUserRepository) CountTweets(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Tweet{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
