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

// FollowHandler handles the follow graph
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
	notifier         *services.Notifier
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, notifier *services.Notifier) *FollowHandler {
	return &FollowHandler{followRepository: followRepo, userRepository: userRepo, notifier: notifier}
}

// RegisterFollowRoutes registers the follow routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:username/follow", h.Follow)
	g.DELETE("/users/:username/unfollow", h.Unfollow)
	g.GET("/users/:username/followers", h.GetFollowers)
	g.GET("/users/:username/following", h.GetFollowing)
}

// Follow makes the viewer follow another user and notifies them.
// Self-follow is rejected, double-follow hits the unique index.
func (h *FollowHandler) Follow(c echo.Context) error {
	target, err := h.getUser(c.Param("username"))
	if err != nil {
		return err
	}
	viewerID := currentUserID(c)
	if target.ID == viewerID {
		return apperrors.Validation("self_follow", "You can't follow yourself")
	}

	follow := &models.Follow{FollowerID: viewerID, FollowingID: target.ID}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.AlreadyExists("already_following", "You are already following this user")
		}
		return err
	}

	eventTarget := models.Target{Type: models.TargetFollow, ID: follow.ID}
	h.notifier.Notify(&follow.FollowerID, target.ID, models.VerbFollowed, &eventTarget)

	return c.JSON(http.StatusCreated, echo.Map{"msg": "You are now following " + target.Username})
}

// Unfollow removes the viewer's follow of another user.
func (h *FollowHandler) Unfollow(c echo.Context) error {
	target, err := h.getUser(c.Param("username"))
	if err != nil {
		return err
	}

	if err := h.followRepository.DeleteFollow(currentUserID(c), target.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Validation("not_following", "You are not following this user")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetFollowers returns one page of a user's followers.
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	target, err := h.getUser(c.Param("username"))
	if err != nil {
		return err
	}
	users, err := h.followRepository.GetFollowers(target.ID)
	if err != nil {
		return err
	}
	return h.authorPage(c, users)
}

// GetFollowing returns one page of the users someone follows.
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	target, err := h.getUser(c.Param("username"))
	if err != nil {
		return err
	}
	users, err := h.followRepository.GetFollowing(target.ID)
	if err != nil {
		return err
	}
	return h.authorPage(c, users)
}

func (h *FollowHandler) authorPage(c echo.Context, users []models.User) error {
	authors := make([]models.Author, 0, len(users))
	for i := range users {
		authors = append(authors, users[i].ToAuthor())
	}
	page := pagination.ParsePage(c)
	return c.JSON(http.StatusOK, pagination.Envelope(c, len(authors), page, pagination.Slice(authors, page)))
}

func (h *FollowHandler) getUser(username string) (*models.User, error) {
	user, err := h.userRepository.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user_not_found", "User not found")
		}
		return nil, err
	}
	return user, nil
}
