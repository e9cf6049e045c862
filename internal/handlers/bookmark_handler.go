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

// BookmarkHandler handles private tweet bookmarks
type BookmarkHandler struct {
	bookmarkRepository repositories.BookmarkRepository
	tweetRepository    repositories.TweetRepository
	feed               *services.FeedService
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(bookmarkRepo repositories.BookmarkRepository, tweetRepo repositories.TweetRepository, feed *services.FeedService) *BookmarkHandler {
	return &BookmarkHandler{bookmarkRepository: bookmarkRepo, tweetRepository: tweetRepo, feed: feed}
}

// RegisterBookmarkRoutes registers the bookmark routes
func (h *BookmarkHandler) RegisterBookmarkRoutes(g *echo.Group) {
	g.POST("/tweets/:id/bookmark", h.BookmarkTweet)
	g.DELETE("/tweets/:id/bookmark", h.UnbookmarkTweet)
	g.GET("/bookmarks", h.GetBookmarks)
}

// BookmarkTweet saves a tweet to the viewer's private bookmarks. No
// notification is sent, bookmarks are invisible to the tweet author.
func (h *BookmarkHandler) BookmarkTweet(c echo.Context) error {
	tweetID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	tweet, err := h.getTweet(tweetID)
	if err != nil {
		return err
	}

	bookmark := &models.Bookmark{UserID: currentUserID(c), TweetID: tweet.ID}
	if err := h.bookmarkRepository.CreateBookmark(bookmark); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.AlreadyExists("already_bookmarked", "You have already bookmarked this tweet")
		}
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"msg": "Tweet bookmarked"})
}

// UnbookmarkTweet removes a tweet from the viewer's bookmarks.
func (h *BookmarkHandler) UnbookmarkTweet(c echo.Context) error {
	tweetID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.getTweet(tweetID); err != nil {
		return err
	}

	if err := h.bookmarkRepository.DeleteBookmark(currentUserID(c), tweetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("not_bookmarked", "You haven't bookmarked this tweet")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetBookmarks returns one page of the viewer's bookmarked tweets in
// bookmark order, newest bookmark first.
func (h *BookmarkHandler) GetBookmarks(c echo.Context) error {
	posts, err := h.feed.Bookmarked(currentUserID(c))
	if err != nil {
		return err
	}
	page := pagination.ParsePage(c)
	return c.JSON(http.StatusOK, pagination.Envelope(c, len(posts), page, pagination.Slice(posts, page)))
}

func (h *BookmarkHandler) getTweet(id uint) (*models.Tweet, error) {
	tweet, err := h.tweetRepository.GetTweetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("tweet_not_found", "Tweet not found")
		}
		return nil, err
	}
	return tweet, nil
}
