package handlers

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/models"
	"github.com/chirper-app/backend/internal/repositories"
	"github.com/chirper-app/backend/internal/services"
	"github.com/chirper-app/backend/internal/testutil"
)

func newCommentHandler(db *gorm.DB) *CommentHandler {
	notifier := services.NewNotifier(repositories.NewPostgresNotificationRepository(db))
	mentions := services.NewMentionService(
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresMentionRepository(db),
		notifier,
	)
	return NewCommentHandler(
		repositories.NewPostgresCommentRepository(db),
		repositories.NewPostgresTweetRepository(db),
		notifier,
		mentions,
	)
}

func TestCreateCommentNotifiesAuthor(t *testing.T) {
	db := testutil.NewDB(t)
	h := newCommentHandler(db)

	author := testutil.NewUser(t, db, "author")
	viewer := testutil.NewUser(t, db, "viewer")
	tweet := testutil.NewTweet(t, db, author, "discuss")

	c, rec := newContext(t, http.MethodPost, "/", `{"content":"nice one"}`, viewer)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(tweet.ID)))
	require.NoError(t, h.CreateComment(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var notification models.Notification
	require.NoError(t, db.First(&notification).Error)
	assert.Equal(t, models.VerbCommented, notification.Verb)
	assert.Equal(t, author.ID, notification.ReceiverID)
}

func TestCreateCommentEmpty(t *testing.T) {
	db := testutil.NewDB(t)
	h := newCommentHandler(db)

	author := testutil.NewUser(t, db, "author")
	tweet := testutil.NewTweet(t, db, author, "discuss")

	c, _ := newContext(t, http.MethodPost, "/", `{}`, author)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(tweet.ID)))
	requireAppError(t, h.CreateComment(c), "empty_comment")
}

func TestCreateReplyInvalidParent(t *testing.T) {
	db := testutil.NewDB(t)
	h := newCommentHandler(db)

	author := testutil.NewUser(t, db, "author")
	tweet := testutil.NewTweet(t, db, author, "first")
	other := testutil.NewTweet(t, db, author, "second")

	// a comment on the other tweet can't parent a reply here
	stray := &models.Comment{UserID: author.ID, TweetID: other.ID, Content: "elsewhere"}
	require.NoError(t, db.Create(stray).Error)

	body := `{"content":"reply","parent":` + strconv.Itoa(int(stray.ID)) + `}`
	c, _ := newContext(t, http.MethodPost, "/", body, author)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(tweet.ID)))
	requireAppError(t, h.CreateComment(c), "invalid_parent")
}

func TestGetCommentsTree(t *testing.T) {
	db := testutil.NewDB(t)
	h := newCommentHandler(db)

	author := testutil.NewUser(t, db, "author")
	tweet := testutil.NewTweet(t, db, author, "threaded")

	top := &models.Comment{UserID: author.ID, TweetID: tweet.ID, Content: "top"}
	require.NoError(t, db.Create(top).Error)
	reply := &models.Comment{UserID: author.ID, TweetID: tweet.ID, ParentID: &top.ID, Content: "reply"}
	require.NoError(t, db.Create(reply).Error)
	nested := &models.Comment{UserID: author.ID, TweetID: tweet.ID, ParentID: &reply.ID, Content: "nested"}
	require.NoError(t, db.Create(nested).Error)

	c, rec := newContext(t, http.MethodGet, "/", "", author)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(tweet.ID)))
	require.NoError(t, h.GetComments(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	comments, err := repositories.NewPostgresCommentRepository(db).GetCommentsByTweetID(tweet.ID)
	require.NoError(t, err)
	tree := buildCommentTree(comments)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Replies, 1)
	require.Len(t, tree[0].Replies[0].Replies, 1)
	assert.Equal(t, "nested", tree[0].Replies[0].Replies[0].Content)
}

func TestDeleteCommentAuthorOnlyAndSubtree(t *testing.T) {
	db := testutil.NewDB(t)
	h := newCommentHandler(db)

	author := testutil.NewUser(t, db, "author")
	viewer := testutil.NewUser(t, db, "viewer")
	tweet := testutil.NewTweet(t, db, author, "threaded")

	top := &models.Comment{UserID: author.ID, TweetID: tweet.ID, Content: "top"}
	require.NoError(t, db.Create(top).Error)
	reply := &models.Comment{UserID: viewer.ID, TweetID: tweet.ID, ParentID: &top.ID, Content: "reply"}
	require.NoError(t, db.Create(reply).Error)

	c, _ := newContext(t, http.MethodDelete, "/", "", viewer)
	c.SetParamNames("comment_id")
	c.SetParamValues(strconv.Itoa(int(top.ID)))
	requireAppError(t, h.DeleteComment(c), "not_author")

	c, rec := newContext(t, http.MethodDelete, "/", "", author)
	c.SetParamNames("comment_id")
	c.SetParamValues(strconv.Itoa(int(top.ID)))
	require.NoError(t, h.DeleteComment(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}
