package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/apperrors"
	"github.com/chirper-app/backend/internal/models"
	"github.com/chirper-app/backend/internal/repositories"
	"github.com/chirper-app/backend/internal/services"
)

// RetweetHandler handles retweeting and un-retweeting
type RetweetHandler struct {
	retweetRepository repositories.RetweetRepository
	tweetRepository   repositories.TweetRepository
	notifier          *services.Notifier
	mentions          *services.MentionService
}

// NewRetweetHandler creates a new RetweetHandler
func NewRetweetHandler(
	retweetRepo repositories.RetweetRepository,
	tweetRepo repositories.TweetRepository,
	notifier *services.Notifier,
	mentions *services.MentionService,
) *RetweetHandler {
	return &RetweetHandler{
		retweetRepository: retweetRepo,
		tweetRepository:   tweetRepo,
		notifier:          notifier,
		mentions:          mentions,
	}
}

// RegisterRetweetRoutes registers the retweet routes
func (h *RetweetHandler) RegisterRetweetRoutes(g *echo.Group) {
	g.POST("/tweets/:id/retweets", h.Retweet)
	g.DELETE("/tweets/:id/retweets", h.Unretweet)
	g.GET("/tweets/:id/retweets", h.GetRetweets)
}

// Retweet re-shares a tweet with an optional quote, notifies the tweet
// author and records mentions in the quote. One retweet per user per
// tweet, enforced by the unique index.
func (h *RetweetHandler) Retweet(c echo.Context) error {
	tweetID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req models.CreateRetweetRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid_request", "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tweet, err := h.getTweet(tweetID)
	if err != nil {
		return err
	}

	retweet := &models.Retweet{
		UserID:  currentUserID(c),
		TweetID: tweet.ID,
		Quote:   req.Quote,
	}
	if err := h.retweetRepository.CreateRetweet(retweet); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.AlreadyExists("already_retweeted", "You have already retweeted this tweet")
		}
		return err
	}

	target := models.Target{Type: models.TargetRetweet, ID: retweet.ID}
	h.notifier.Notify(&retweet.UserID, tweet.UserID, models.VerbRetweeted, &target)
	h.mentions.Extract(retweet.UserID, retweet.Quote, target)

	return c.JSON(http.StatusCreated, echo.Map{"msg": "Tweet retweeted"})
}

// Unretweet removes the viewer's retweet of a tweet.
func (h *RetweetHandler) Unretweet(c echo.Context) error {
	tweetID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.getTweet(tweetID); err != nil {
		return err
	}

	if err := h.retweetRepository.DeleteRetweet(currentUserID(c), tweetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("not_retweeted", "You haven't retweeted this tweet")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetRetweets lists the users who retweeted a tweet, with their quotes.
func (h *RetweetHandler) GetRetweets(c echo.Context) error {
	tweetID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	tweet, err := h.getTweet(tweetID)
	if err != nil {
		return err
	}

	retweets, err := h.retweetRepository.GetRetweetsByTweetID(tweet.ID)
	if err != nil {
		return err
	}

	type retweetEntry struct {
		Author    models.Author `json:"author"`
		Quote     string        `json:"quote"`
		CreatedAt time.Time     `json:"created_at"`
	}
	results := make([]retweetEntry, 0, len(retweets))
	for i := range retweets {
		rt := &retweets[i]
		results = append(results, retweetEntry{
			Author:    rt.User.ToAuthor(),
			Quote:     rt.Quote,
			CreatedAt: rt.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(results), "results": results})
}

func (h *RetweetHandler) getTweet(id uint) (*models.Tweet, error) {
	tweet, err := h.tweetRepository.GetTweetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("tweet_not_found", "Tweet not found")
		}
		return nil, err
	}
	return tweet, nil
}
