// Package services holds the write-path logic that sits between the
// HTTP handlers and the repositories: feed composition, notification
// fanout and mention extraction.
package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/models"
	"github.com/chirper-app/backend/internal/repositories"
)

// Notifier fans a single notification out to a receiver. Fanout is a
// best-effort side effect: it never returns an error to the triggering
// write, and replaying the same logical event is a no-op thanks to the
// (sender, receiver, verb, target) unique constraint.
type Notifier struct {
	notifications repositories.NotificationRepository
}

func NewNotifier(notificationRepo repositories.NotificationRepository) *Notifier {
	return &Notifier{notifications: notificationRepo}
}

// Notify creates one notification. A nil senderID marks a system event
// (welcome, changed, reset, deactivated, reactivated), which always
// fires; user events are skipped when sender and receiver coincide.
func (n *Notifier) Notify(senderID *uint, receiverID uint, verb string, target *models.Target) {
	if senderID != nil && *senderID == receiverID {
		return
	}

	notification := &models.Notification{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Verb:       verb,
	}
	if target != nil {
		notification.TargetType = &target.Type
		notification.TargetID = &target.ID
	}

	if err := n.notifications.CreateNotification(notification); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return
		}
		log.Printf("notification fanout failed (verb=%s receiver=%d): %v", verb, receiverID, err)
	}
}

// NotificationMessage renders the display text for a notification at
// read time. Nothing is stored; changing the wording here changes every
// past notification too.
func NotificationMessage(verb, senderName, targetKind string) string {
	switch verb {
	case models.VerbFollowed:
		return senderName + " started following you"
	case models.VerbCommented:
		return senderName + " commented on your tweet"
	case models.VerbMentioned:
		return senderName + " mentioned you in a " + targetKind
	case models.VerbRetweeted:
		return senderName + " retweeted your tweet"
	case models.VerbLiked:
		return senderName + " liked your tweet"
	case models.VerbWelcome:
		return "Welcome! Your account has been created"
	case models.VerbChanged:
		return "Your password was changed"
	case models.VerbReset:
		return "Your password was reset"
	case models.VerbDeactivated:
		return "Your account has been deactivated"
	case models.VerbReactivated:
		return "Your account has been reactivated"
	}
	return ""
}

// NotificationViews shapes notifications for the read side, rendering
// messages from the verb lookup.
func NotificationViews(notifications []models.Notification) []models.NotificationView {
	views := make([]models.NotificationView, len(notifications))
	for i, n := range notifications {
		view := models.NotificationView{
			ID:         n.ID,
			Verb:       n.Verb,
			TargetType: n.TargetType,
			TargetID:   n.TargetID,
			IsRead:     n.IsRead,
			CreatedAt:  n.CreatedAt,
		}
		senderName := ""
		if n.Sender != nil {
			author := n.Sender.ToAuthor()
			view.Sender = &author
			senderName = author.Name
		}
		targetKind := ""
		if n.TargetType != nil {
			targetKind = *n.TargetType
		}
		view.Message = NotificationMessage(n.Verb, senderName, targetKind)
		views[i] = view
	}
	return views
}
