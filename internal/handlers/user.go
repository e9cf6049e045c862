package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/apperrors"
	"github.com/chirper-app/backend/internal/models"
	"github.com/chirper-app/backend/internal/repositories"
)

// UserHandler serves profile views and updates
type UserHandler struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, followRepo repositories.FollowRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo, followRepository: followRepo}
}

// RegisterUserRoutes registers the user routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/me", h.Me)
	g.PUT("/me/update", h.UpdateMe)
	g.GET("/users/search", h.Search)
	g.GET("/users/:username", h.GetByUsername)
}

type userDetail struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	Bio            string `json:"bio"`
	ProfileImage   string `json:"profile_image"`
	CoverImage     string `json:"cover_image"`
	Location       string `json:"location"`
	Website        string `json:"website"`
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
	TweetsCount    int64  `json:"tweets_count"`
	IsFollowing    bool   `json:"is_following"`
}

// Me returns the authenticated user's own profile.
func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(currentUserID(c))
	if err != nil {
		return err
	}
	detail, err := h.detailOf(user, currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// UpdateMe updates the authenticated user's profile fields.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid_request", "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(currentUserID(c))
	if err != nil {
		return err
	}

	// omitted fields arrive empty and leave the stored value alone
	if req.Name != "" {
		user.Profile.Name = req.Name
	}
	if req.Bio != "" {
		user.Profile.Bio = req.Bio
	}
	if req.ProfileImage != "" {
		user.Profile.ProfileImage = req.ProfileImage
	}
	if req.CoverImage != "" {
		user.Profile.CoverImage = req.CoverImage
	}
	if req.Location != "" {
		user.Profile.Location = req.Location
	}
	if req.Website != "" {
		user.Profile.Website = req.Website
	}
	if err := h.userRepository.UpdateProfile(&user.Profile); err != nil {
		return err
	}

	detail, err := h.detailOf(user, currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// GetByUsername returns the public profile of a user together with
// follower, following and tweet counts.
func (h *UserHandler) GetByUsername(c echo.Context) error {
	user, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("user_not_found", "User not found")
		}
		return err
	}
	detail, err := h.detailOf(user, currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// Search looks up users by username or display name.
func (h *UserHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return apperrors.Validation("empty_query", "Search query can't be empty")
	}

	users, err := h.userRepository.SearchUsers(query)
	if err != nil {
		return err
	}
	results := make([]models.Author, 0, len(users))
	for i := range users {
		results = append(results, users[i].ToAuthor())
	}
	return c.JSON(http.StatusOK, echo.Map{"results": results})
}

func (h *UserHandler) detailOf(user *models.User, viewerID uint) (*userDetail, error) {
	followers, err := h.followRepository.GetFollowersCount(user.ID)
	if err != nil {
		return nil, err
	}
	following, err := h.followRepository.GetFollowingCount(user.ID)
	if err != nil {
		return nil, err
	}
	tweets, err := h.userRepository.CountTweets(user.ID)
	if err != nil {
		return nil, err
	}

	isFollowing := false
	if viewerID != 0 && viewerID != user.ID {
		isFollowing, err = h.followRepository.IsFollowing(viewerID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	name := user.Profile.Name
	if name == "" {
		name = user.Username
	}
	return &userDetail{
		ID:             user.ID,
		Username:       user.Username,
		Name:           name,
		Bio:            user.Profile.Bio,
		ProfileImage:   user.Profile.ProfileImage,
		CoverImage:     user.Profile.CoverImage,
		Location:       user.Profile.Location,
		Website:        user.Profile.Website,
		FollowersCount: followers,
		FollowingCount: following,
		TweetsCount:    tweets,
		IsFollowing:    isFollowing,
	}, nil
}
