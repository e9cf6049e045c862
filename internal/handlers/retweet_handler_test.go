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

func newRetweetHandler(db *gorm.DB) *RetweetHandler {
	notifier := services.NewNotifier(repositories.NewPostgresNotificationRepository(db))
	mentions := services.NewMentionService(
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresMentionRepository(db),
		notifier,
	)
	return NewRetweetHandler(
		repositories.NewPostgresRetweetRepository(db),
		repositories.NewPostgresTweetRepository(db),
		notifier,
		mentions,
	)
}

func TestRetweetRoundTrip(t *testing.T) {
	db := testutil.NewDB(t)
	h := newRetweetHandler(db)

	author := testutil.NewUser(t, db, "author")
	viewer := testutil.NewUser(t, db, "viewer")
	tweet := testutil.NewTweet(t, db, author, "original")
	id := strconv.Itoa(int(tweet.ID))

	c, rec := newContext(t, http.MethodPost, "/", `{"quote":"worth a look"}`, viewer)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.Retweet(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var notification models.Notification
	require.NoError(t, db.First(&notification).Error)
	assert.Equal(t, models.VerbRetweeted, notification.Verb)
	assert.Equal(t, author.ID, notification.ReceiverID)

	c, _ = newContext(t, http.MethodPost, "/", `{"quote":"again"}`, viewer)
	c.SetParamNames("id")
	c.SetParamValues(id)
	requireAppError(t, h.Retweet(c), "already_retweeted")

	c, rec = newContext(t, http.MethodDelete, "/", "", viewer)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.Unretweet(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c, _ = newContext(t, http.MethodDelete, "/", "", viewer)
	c.SetParamNames("id")
	c.SetParamValues(id)
	requireAppError(t, h.Unretweet(c), "not_retweeted")
}

func TestRetweetQuoteMentions(t *testing.T) {
	db := testutil.NewDB(t)
	h := newRetweetHandler(db)

	author := testutil.NewUser(t, db, "author")
	viewer := testutil.NewUser(t, db, "viewer")
	testutil.NewUser(t, db, "alice")
	tweet := testutil.NewTweet(t, db, author, "original")

	c, _ := newContext(t, http.MethodPost, "/", `{"quote":"cc @alice"}`, viewer)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(tweet.ID)))
	require.NoError(t, h.Retweet(c))

	var mention models.Mention
	require.NoError(t, db.First(&mention).Error)
	assert.Equal(t, models.TargetRetweet, mention.TargetType)
	assert.Equal(t, viewer.ID, mention.ActorID)
}
