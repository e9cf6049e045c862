package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chirper-app/backend/internal/pagination"
	"github.com/chirper-app/backend/internal/services"
)

// MentionHandler serves the viewer's mention inbox
type MentionHandler struct {
	mentions *services.MentionService
}

// NewMentionHandler creates a new MentionHandler
func NewMentionHandler(mentions *services.MentionService) *MentionHandler {
	return &MentionHandler{mentions: mentions}
}

// RegisterMentionRoutes registers the mention routes
func (h *MentionHandler) RegisterMentionRoutes(g *echo.Group) {
	g.GET("/mentions", h.GetMentions)
}

// GetMentions returns one page of the places the viewer was @-mentioned,
// newest first, each with a short preview of the mentioning content.
func (h *MentionHandler) GetMentions(c echo.Context) error {
	views, err := h.mentions.ListForUser(currentUserID(c))
	if err != nil {
		return err
	}
	page := pagination.ParsePage(c)
	return c.JSON(http.StatusOK, pagination.Envelope(c, len(views), page, pagination.Slice(views, page)))
}
