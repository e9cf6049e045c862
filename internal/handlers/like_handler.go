package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/apperrors"
	"github.com/chirper-app/backend/internal/models"
	"github.com/chirper-app/backend/internal/repositories"
	"github.com/chirper-app/backend/internal/services"
)

// LikeHandler handles liking and unliking tweets
type LikeHandler struct {
	likeRepository  repositories.LikeRepository
	tweetRepository repositories.TweetRepository
	notifier        *services.Notifier
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, tweetRepo repositories.TweetRepository, notifier *services.Notifier) *LikeHandler {
	return &LikeHandler{likeRepository: likeRepo, tweetRepository: tweetRepo, notifier: notifier}
}

// RegisterLikeRoutes registers the like routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/tweets/:id/likes", h.LikeTweet)
	g.DELETE("/tweets/:id/likes", h.UnlikeTweet)
	g.GET("/tweets/:id/likes", h.GetLikes)
}

// LikeTweet likes a tweet and notifies its author. Liking twice is
// rejected, the unique index decides under concurrency.
func (h *LikeHandler) LikeTweet(c echo.Context) error {
	tweetID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	tweet, err := h.getTweet(tweetID)
	if err != nil {
		return err
	}

	like := &models.Like{UserID: currentUserID(c), TweetID: tweet.ID}
	if err := h.likeRepository.CreateLike(like); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.AlreadyExists("already_liked", "You have already liked this tweet")
		}
		return err
	}

	target := models.Target{Type: models.TargetTweet, ID: tweet.ID}
	h.notifier.Notify(&like.UserID, tweet.UserID, models.VerbLiked, &target)

	return c.JSON(http.StatusCreated, echo.Map{"msg": "Tweet liked"})
}

// UnlikeTweet removes the viewer's like from a tweet.
func (h *LikeHandler) UnlikeTweet(c echo.Context) error {
	tweetID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.getTweet(tweetID); err != nil {
		return err
	}

	if err := h.likeRepository.DeleteLike(currentUserID(c), tweetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("not_liked", "You haven't liked this tweet")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetLikes lists the users who liked a tweet. Only the tweet's author
// may see the list.
func (h *LikeHandler) GetLikes(c echo.Context) error {
	tweetID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	tweet, err := h.getTweet(tweetID)
	if err != nil {
		return err
	}
	if tweet.UserID != currentUserID(c) {
		return apperrors.Permission("not_author", "Only the tweet author can see who liked it")
	}

	likes, err := h.likeRepository.GetLikesByTweetID(tweet.ID)
	if err != nil {
		return err
	}
	results := make([]models.Author, 0, len(likes))
	for i := range likes {
		results = append(results, likes[i].User.ToAuthor())
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(results), "results": results})
}

func (h *LikeHandler) getTweet(id uint) (*models.Tweet, error) {
	tweet, err := h.tweetRepository.GetTweetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("tweet_not_found", "Tweet not found")
		}
		return nil, err
	}
	return tweet, nil
}
