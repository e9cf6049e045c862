package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/apperrors"
	"github.com/chirper-app/backend/internal/models"
	"github.com/chirper-app/backend/internal/pagination"
	"github.com/chirper-app/backend/internal/repositories"
	"github.com/chirper-app/backend/internal/services"
)

// NotificationHandler serves the viewer's notification inbox
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notificationRepo}
}

// RegisterNotificationRoutes registers the notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread", h.GetUnreadNotifications)
	g.GET("/notifications/count", h.GetUnreadCount)
	g.POST("/notifications/mark-all-read", h.MarkAllRead)
	g.PATCH("/notifications/:id/read", h.MarkRead)
	g.DELETE("/notifications/:id", h.DeleteNotification)
}

// GetNotifications returns one page of the viewer's notifications,
// newest first, with messages rendered from the stored verb.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	notifications, err := h.notificationRepository.GetByReceiverID(currentUserID(c))
	if err != nil {
		return err
	}
	views := services.NotificationViews(notifications)
	page := pagination.ParsePage(c)
	return c.JSON(http.StatusOK, pagination.Envelope(c, len(views), page, pagination.Slice(views, page)))
}

// GetUnreadNotifications returns one page of the unread notifications.
func (h *NotificationHandler) GetUnreadNotifications(c echo.Context) error {
	notifications, err := h.notificationRepository.GetUnreadByReceiverID(currentUserID(c))
	if err != nil {
		return err
	}
	views := services.NotificationViews(notifications)
	page := pagination.ParsePage(c)
	return c.JSON(http.StatusOK, pagination.Envelope(c, len(views), page, pagination.Slice(views, page)))
}

// GetUnreadCount returns how many unread notifications the viewer has.
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notificationRepository.GetUnreadCount(currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"unread_count": count})
}

// MarkRead marks one notification as read. Receiver only.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	notification, err := h.getOwned(c)
	if err != nil {
		return err
	}
	if err := h.notificationRepository.MarkAsRead(notification.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Notification marked as read"})
}

// MarkAllRead marks every unread notification as read and reports how
// many were flipped.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	updated, err := h.notificationRepository.MarkAllAsRead(currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"updated_count": updated})
}

// DeleteNotification removes one notification. Receiver only.
func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	notification, err := h.getOwned(c)
	if err != nil {
		return err
	}
	if err := h.notificationRepository.DeleteNotification(notification.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NotificationHandler) getOwned(c echo.Context) (*models.Notification, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	notification, err := h.notificationRepository.GetNotificationByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("notification_not_found", "Notification not found")
		}
		return nil, err
	}
	if notification.ReceiverID != currentUserID(c) {
		return nil, apperrors.Permission("not_receiver", "This notification isn't yours")
	}
	return notification, nil
}
