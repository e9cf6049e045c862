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

// CommentHandler handles commenting on tweets and the reply tree
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	tweetRepository   repositories.TweetRepository
	notifier          *services.Notifier
	mentions          *services.MentionService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	tweetRepo repositories.TweetRepository,
	notifier *services.Notifier,
	mentions *services.MentionService,
) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		tweetRepository:   tweetRepo,
		notifier:          notifier,
		mentions:          mentions,
	}
}

// RegisterCommentRoutes registers the comment routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/tweets/:id/comments", h.CreateComment)
	g.GET("/tweets/:id/comments", h.GetComments)
	g.GET("/tweets/:id/comments/:comment_id", h.GetComment)
	g.DELETE("/tweets/:id/comments/:comment_id", h.DeleteComment)
}

// commentNode is a comment with its replies nested beneath it.
type commentNode struct {
	ID        uint          `json:"id"`
	Author    models.Author `json:"author"`
	Content   string        `json:"content"`
	Image     string        `json:"image"`
	Parent    *uint         `json:"parent"`
	CreatedAt time.Time     `json:"created_at"`
	Replies   []commentNode `json:"replies"`
}

// CreateComment adds a comment (or a reply, when parent is set) to a
// tweet, notifies the tweet author and records mentions.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	tweetID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid_request", "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Content == "" && req.Image == "" {
		return apperrors.Validation("empty_comment", "Comment can't be empty")
	}

	tweet, err := h.tweetRepository.GetTweetByID(tweetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("tweet_not_found", "Tweet not found")
		}
		return err
	}

	if req.Parent != nil {
		parent, err := h.commentRepository.GetCommentByID(*req.Parent)
		if err != nil || parent.TweetID != tweet.ID {
			return apperrors.Validation("invalid_parent", "Parent comment doesn't belong to this tweet")
		}
	}

	comment := &models.Comment{
		UserID:   currentUserID(c),
		TweetID:  tweet.ID,
		ParentID: req.Parent,
		Content:  req.Content,
		Image:    req.Image,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return err
	}

	target := models.Target{Type: models.TargetComment, ID: comment.ID}
	h.notifier.Notify(&comment.UserID, tweet.UserID, models.VerbCommented, &target)
	h.mentions.Extract(comment.UserID, comment.Content, target)

	created, err := h.commentRepository.GetCommentByID(comment.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, nodeOf(created))
}

// GetComments returns a tweet's full comment tree, top-level comments
// in insertion order with replies nested.
func (h *CommentHandler) GetComments(c echo.Context) error {
	tweetID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.tweetRepository.GetTweetByID(tweetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("tweet_not_found", "Tweet not found")
		}
		return err
	}

	comments, err := h.commentRepository.GetCommentsByTweetID(tweetID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"results": buildCommentTree(comments)})
}

// GetComment returns a single comment.
func (h *CommentHandler) GetComment(c echo.Context) error {
	id, err := pathID(c, "comment_id")
	if err != nil {
		return err
	}
	comment, err := h.getComment(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nodeOf(comment))
}

// DeleteComment deletes a comment and its whole reply subtree. Only the
// comment's author may delete it.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := pathID(c, "comment_id")
	if err != nil {
		return err
	}
	comment, err := h.getComment(id)
	if err != nil {
		return err
	}
	if comment.UserID != currentUserID(c) {
		return apperrors.Permission("not_author", "You can only delete your own comments")
	}

	if err := h.commentRepository.DeleteCommentTree(comment.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CommentHandler) getComment(id uint) (*models.Comment, error) {
	comment, err := h.commentRepository.GetCommentByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("comment_not_found", "Comment not found")
		}
		return nil, err
	}
	return comment, nil
}

// buildCommentTree nests replies under their parents. Comments arrive
// in id order, so parents are always placed before their children.
func buildCommentTree(comments []models.Comment) []commentNode {
	nodes := make(map[uint]*commentNode, len(comments))
	order := make([]uint, 0, len(comments))
	for i := range comments {
		node := nodeOf(&comments[i])
		nodes[node.ID] = &node
		order = append(order, node.ID)
	}

	roots := make([]commentNode, 0)
	// attach children depth-first so nested reply slices are complete
	// before a root is appended
	for i := len(order) - 1; i >= 0; i-- {
		node := nodes[order[i]]
		if node.Parent != nil {
			if parent, ok := nodes[*node.Parent]; ok {
				parent.Replies = append([]commentNode{*node}, parent.Replies...)
				continue
			}
		}
	}
	for _, id := range order {
		node := nodes[id]
		if node.Parent == nil {
			roots = append(roots, *node)
		}
	}
	return roots
}

func nodeOf(c *models.Comment) commentNode {
	return commentNode{
		ID:        c.ID,
		Author:    c.User.ToAuthor(),
		Content:   c.Content,
		Image:     c.Image,
		Parent:    c.ParentID,
		CreatedAt: c.CreatedAt,
		Replies:   []commentNode{},
	}
}
