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

func newLikeHandler(db *gorm.DB) *LikeHandler {
	return NewLikeHandler(
		repositories.NewPostgresLikeRepository(db),
		repositories.NewPostgresTweetRepository(db),
		services.NewNotifier(repositories.NewPostgresNotificationRepository(db)),
	)
}

func TestLikeUnlikeRoundTrip(t *testing.T) {
	db := testutil.NewDB(t)
	h := newLikeHandler(db)

	author := testutil.NewUser(t, db, "author")
	viewer := testutil.NewUser(t, db, "viewer")
	tweet := testutil.NewTweet(t, db, author, "likable")
	tweetID := strconv.Itoa(int(tweet.ID))

	// first like succeeds
	c, rec := newContext(t, http.MethodPost, "/", "", viewer)
	c.SetParamNames("id")
	c.SetParamValues(tweetID)
	require.NoError(t, h.LikeTweet(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	// the author gets notified
	var notification models.Notification
	require.NoError(t, db.First(&notification).Error)
	assert.Equal(t, author.ID, notification.ReceiverID)
	assert.Equal(t, models.VerbLiked, notification.Verb)

	// second like is rejected
	c, _ = newContext(t, http.MethodPost, "/", "", viewer)
	c.SetParamNames("id")
	c.SetParamValues(tweetID)
	requireAppError(t, h.LikeTweet(c), "already_liked")

	// unlike succeeds
	c, rec = newContext(t, http.MethodDelete, "/", "", viewer)
	c.SetParamNames("id")
	c.SetParamValues(tweetID)
	require.NoError(t, h.UnlikeTweet(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// unlike again reports the missing like
	c, _ = newContext(t, http.MethodDelete, "/", "", viewer)
	c.SetParamNames("id")
	c.SetParamValues(tweetID)
	requireAppError(t, h.UnlikeTweet(c), "not_liked")

	var count int64
	require.NoError(t, db.Model(&models.Like{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLikeUnknownTweet(t *testing.T) {
	db := testutil.NewDB(t)
	h := newLikeHandler(db)
	viewer := testutil.NewUser(t, db, "viewer")

	c, _ := newContext(t, http.MethodPost, "/", "", viewer)
	c.SetParamNames("id")
	c.SetParamValues("999")
	requireAppError(t, h.LikeTweet(c), "tweet_not_found")
}

func TestGetLikesAuthorOnly(t *testing.T) {
	db := testutil.NewDB(t)
	h := newLikeHandler(db)

	author := testutil.NewUser(t, db, "author")
	viewer := testutil.NewUser(t, db, "viewer")
	tweet := testutil.NewTweet(t, db, author, "likable")
	require.NoError(t, db.Create(&models.Like{UserID: viewer.ID, TweetID: tweet.ID}).Error)
	tweetID := strconv.Itoa(int(tweet.ID))

	c, _ := newContext(t, http.MethodGet, "/", "", viewer)
	c.SetParamNames("id")
	c.SetParamValues(tweetID)
	requireAppError(t, h.GetLikes(c), "not_author")

	c, rec := newContext(t, http.MethodGet, "/", "", author)
	c.SetParamNames("id")
	c.SetParamValues(tweetID)
	require.NoError(t, h.GetLikes(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"viewer"`)
}
