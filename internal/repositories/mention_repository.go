package repositories

import (
	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/models"
)

// MentionRepository defines the interface for mention data operations
type MentionRepository interface {
	CreateMention(mention *models.Mention) error
	GetMentionsForUser(userID uint) ([]models.Mention, error)
	GetTargetPreviews(mentions []models.Mention) (map[string]map[uint]string, error)
}

type postgresMentionRepository struct {
	db *gorm.DB
}

func NewPostgresMentionRepository(db *gorm.DB) MentionRepository {
	return &postgresMentionRepository{db: db}
}

// CreateMention inserts a mention. Re-scanning the same text hits the
// (mentioned user, target) unique index and surfaces gorm.ErrDuplicatedKey.
func (r *postgresMentionRepository) CreateMention(mention *models.Mention) error {
	return r.db.Create(mention).Error
}

// GetMentionsForUser lists mentions of a user newest first with actors
// preloaded.
func (r *postgresMentionRepository) GetMentionsForUser(userID uint) ([]models.Mention, error) {
	var mentions []models.Mention
	err := r.db.Preload("Actor.Profile").
		Where("mentioned_user_id = ?", userID).
		Order("created_at DESC").
		Find(&mentions).Error
	return mentions, err
}

const previewLen = 20

// GetTargetPreviews fetches a short excerpt of every mention target,
// one query per target kind. The result maps kind -> id -> excerpt.
func (r *postgresMentionRepository) GetTargetPreviews(mentions []models.Mention) (map[string]map[uint]string, error) {
	idsByType := make(map[string][]uint)
	for _, m := range mentions {
		idsByType[m.TargetType] = append(idsByType[m.TargetType], m.TargetID)
	}

	previews := map[string]map[uint]string{
		models.TargetTweet:   {},
		models.TargetComment: {},
		models.TargetRetweet: {},
	}

	type textRow struct {
		ID   uint
		Text string
	}
	fetch := func(model any, column, kind string) error {
		ids := idsByType[kind]
		if len(ids) == 0 {
			return nil
		}
		var rows []textRow
		if err := r.db.Model(model).Select("id, " + column + " AS text").Where("id IN ?", ids).Scan(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			previews[kind][row.ID] = truncate(row.Text, previewLen)
		}
		return nil
	}

	if err := fetch(&models.Tweet{}, "content", models.TargetTweet); err != nil {
		return nil, err
	}
	if err := fetch(&models.Comment{}, "content", models.TargetComment); err != nil {
		return nil, err
	}
	if err := fetch(&models.Retweet{}, "quote", models.TargetRetweet); err != nil {
		return nil, err
	}
	return previews, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
