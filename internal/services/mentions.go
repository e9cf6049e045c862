package services

import (
	"errors"
	"log"
	"regexp"

	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/models"
	"github.com/chirper-app/backend/internal/repositories"
)

var mentionPattern = regexp.MustCompile(`@(\w+)`)

// MentionService scans free text for @username tokens and records a
// Mention (plus a mentioned-notification) for each resolved user. Like
// fanout it is best-effort: failures are logged, never propagated.
type MentionService struct {
	users    repositories.UserRepository
	mentions repositories.MentionRepository
	notifier *Notifier
}

func NewMentionService(userRepo repositories.UserRepository, mentionRepo repositories.MentionRepository, notifier *Notifier) *MentionService {
	return &MentionService{users: userRepo, mentions: mentionRepo, notifier: notifier}
}

// Extract processes the text of a freshly created tweet, comment or
// retweet quote. Tokens are deduplicated and resolved case-sensitively
// against usernames, so "@USER2" does not match "user2". Unknown names
// and self-mentions are skipped silently.
func (s *MentionService) Extract(actorID uint, text string, target models.Target) {
	if text == "" {
		return
	}

	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return
	}

	seen := make(map[string]bool, len(matches))
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			tokens = append(tokens, m[1])
		}
	}

	users, err := s.users.GetUsersByUsernames(tokens)
	if err != nil {
		log.Printf("mention lookup failed: %v", err)
		return
	}

	for _, user := range users {
		if user.ID == actorID {
			continue
		}

		mention := &models.Mention{
			ActorID:         actorID,
			MentionedUserID: user.ID,
			TargetType:      target.Type,
			TargetID:        target.ID,
		}
		if err := s.mentions.CreateMention(mention); err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				log.Printf("mention create failed (user=%d): %v", user.ID, err)
			}
			continue
		}

		actor := actorID
		s.notifier.Notify(&actor, user.ID, models.VerbMentioned, &target)
	}
}

// ListForUser shapes a user's mentions for the read side. Previews are
// batched per target kind by the repository.
func (s *MentionService) ListForUser(userID uint) ([]models.MentionView, error) {
	mentions, err := s.mentions.GetMentionsForUser(userID)
	if err != nil {
		return nil, err
	}

	previews, err := s.mentions.GetTargetPreviews(mentions)
	if err != nil {
		return nil, err
	}

	views := make([]models.MentionView, len(mentions))
	for i, m := range mentions {
		views[i] = models.MentionView{
			Actor:          m.Actor.Username,
			ContentObject:  m.TargetType,
			ContentPreview: previews[m.TargetType][m.TargetID],
			ContentID:      m.TargetID,
			CreatedAt:      m.CreatedAt,
		}
	}
	return views, nil
}
