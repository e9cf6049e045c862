package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chirper-app/backend/internal/pagination"
	"github.com/chirper-app/backend/internal/services"
)

// FeedHandler serves the home feed
type FeedHandler struct {
	feed *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feed *services.FeedService) *FeedHandler {
	return &FeedHandler{feed: feed}
}

// RegisterFeedRoutes registers the feed routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns one page of the viewer's home feed: tweets and
// retweets by the viewer and everyone they follow, newest first.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	posts, err := h.feed.HomeFeed(currentUserID(c))
	if err != nil {
		return err
	}
	page := pagination.ParsePage(c)
	return c.JSON(http.StatusOK, pagination.Envelope(c, len(posts), page, pagination.Slice(posts, page)))
}
