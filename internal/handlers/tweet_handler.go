package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/apperrors"
	"github.com/chirper-app/backend/internal/models"
	"github.com/chirper-app/backend/internal/pagination"
	"github.com/chirper-app/backend/internal/repositories"
	"github.com/chirper-app/backend/internal/services"
)

// TweetHandler handles tweet CRUD and the per-user timeline
type TweetHandler struct {
	tweetRepository   repositories.TweetRepository
	commentRepository repositories.CommentRepository
	engagement        repositories.EngagementRepository
	feed              *services.FeedService
	mentions          *services.MentionService
}

// NewTweetHandler creates a new TweetHandler
func NewTweetHandler(
	tweetRepo repositories.TweetRepository,
	commentRepo repositories.CommentRepository,
	engagementRepo repositories.EngagementRepository,
	feed *services.FeedService,
	mentions *services.MentionService,
) *TweetHandler {
	return &TweetHandler{
		tweetRepository:   tweetRepo,
		commentRepository: commentRepo,
		engagement:        engagementRepo,
		feed:              feed,
		mentions:          mentions,
	}
}

// RegisterTweetRoutes registers the tweet routes
func (h *TweetHandler) RegisterTweetRoutes(g *echo.Group) {
	g.POST("/tweets", h.CreateTweet)
	g.GET("/tweets/user/:username", h.GetUserTweets)
	g.GET("/tweets/:id", h.GetTweet)
	g.PUT("/tweets/:id", h.UpdateTweet)
	g.DELETE("/tweets/:id", h.DeleteTweet)
}

type tweetDetail struct {
	services.TweetItem
	UpdatedAt time.Time     `json:"updated_at"`
	Comments  []commentNode `json:"comments"`
}

// CreateTweet creates a tweet and records mentions found in its content.
func (h *TweetHandler) CreateTweet(c echo.Context) error {
	var req models.CreateTweetRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid_request", "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Content == "" && req.Image == "" {
		return apperrors.Validation("empty_tweet", "Tweet can't be empty")
	}

	tweet := &models.Tweet{
		UserID:  currentUserID(c),
		Content: req.Content,
		Image:   req.Image,
	}
	if err := h.tweetRepository.CreateTweet(tweet); err != nil {
		return err
	}
	h.mentions.Extract(tweet.UserID, tweet.Content, models.Target{
		Type: models.TargetTweet,
		ID:   tweet.ID,
	})

	created, err := h.tweetRepository.GetTweetByID(tweet.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, services.NewTweetItem(created, models.Engagement{}))
}

// GetTweet returns a single tweet with viewer-scoped engagement and the
// full comment tree.
func (h *TweetHandler) GetTweet(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	tweet, err := h.getTweet(id)
	if err != nil {
		return err
	}

	engagement, err := h.engagement.ForTweets([]uint{tweet.ID}, currentUserID(c))
	if err != nil {
		return err
	}
	comments, err := h.commentRepository.GetCommentsByTweetID(tweet.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tweetDetail{
		TweetItem: services.NewTweetItem(tweet, engagement[tweet.ID]),
		UpdatedAt: tweet.UpdatedAt,
		Comments:  buildCommentTree(comments),
	})
}

// UpdateTweet edits a tweet's content or image. Author only.
func (h *TweetHandler) UpdateTweet(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdateTweetRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid_request", "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Content == "" && req.Image == "" {
		return apperrors.Validation("empty_tweet", "Tweet can't be empty")
	}

	tweet, err := h.getTweet(id)
	if err != nil {
		return err
	}
	if tweet.UserID != currentUserID(c) {
		return apperrors.Permission("not_author", "You can only edit your own tweets")
	}

	tweet.Content = req.Content
	tweet.Image = req.Image
	if err := h.tweetRepository.UpdateTweet(tweet); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, services.NewTweetItem(tweet, models.Engagement{}))
}

// DeleteTweet deletes a tweet and everything attached to it. Author only.
func (h *TweetHandler) DeleteTweet(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	tweet, err := h.getTweet(id)
	if err != nil {
		return err
	}
	if tweet.UserID != currentUserID(c) {
		return apperrors.Permission("not_author", "You can only delete your own tweets")
	}

	if err := h.tweetRepository.DeleteTweet(tweet.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetUserTweets returns one page of a user's timeline (their tweets and
// retweets merged, newest first).
func (h *TweetHandler) GetUserTweets(c echo.Context) error {
	posts, err := h.feed.UserPosts(c.Param("username"), currentUserID(c))
	if err != nil {
		return err
	}
	page := pagination.ParsePage(c)
	return c.JSON(http.StatusOK, pagination.Envelope(c, len(posts), page, pagination.Slice(posts, page)))
}

func (h *TweetHandler) getTweet(id uint) (*models.Tweet, error) {
	tweet, err := h.tweetRepository.GetTweetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("tweet_not_found", "Tweet not found")
		}
		return nil, err
	}
	return tweet, nil
}
