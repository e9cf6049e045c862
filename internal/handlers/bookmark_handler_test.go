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

func newBookmarkHandler(db *gorm.DB) *BookmarkHandler {
	feed := services.NewFeedService(
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresFollowRepository(db),
		repositories.NewPostgresTweetRepository(db),
		repositories.NewPostgresRetweetRepository(db),
		repositories.NewPostgresBookmarkRepository(db),
		repositories.NewPostgresEngagementRepository(db),
	)
	return NewBookmarkHandler(
		repositories.NewPostgresBookmarkRepository(db),
		repositories.NewPostgresTweetRepository(db),
		feed,
	)
}

func TestBookmarkRoundTrip(t *testing.T) {
	db := testutil.NewDB(t)
	h := newBookmarkHandler(db)

	author := testutil.NewUser(t, db, "author")
	viewer := testutil.NewUser(t, db, "viewer")
	tweet := testutil.NewTweet(t, db, author, "keeper")
	id := strconv.Itoa(int(tweet.ID))

	c, rec := newContext(t, http.MethodPost, "/", "", viewer)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.BookmarkTweet(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	// bookmarks are private: no notification is fanned out
	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)

	c, _ = newContext(t, http.MethodPost, "/", "", viewer)
	c.SetParamNames("id")
	c.SetParamValues(id)
	requireAppError(t, h.BookmarkTweet(c), "already_bookmarked")

	c, rec = newContext(t, http.MethodGet, "/api/v1/bookmarks", "", viewer)
	require.NoError(t, h.GetBookmarks(c))
	assert.Contains(t, rec.Body.String(), `"count":1`)
	assert.Contains(t, rec.Body.String(), `"keeper"`)

	c, rec = newContext(t, http.MethodDelete, "/", "", viewer)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.UnbookmarkTweet(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c, _ = newContext(t, http.MethodDelete, "/", "", viewer)
	c.SetParamNames("id")
	c.SetParamValues(id)
	requireAppError(t, h.UnbookmarkTweet(c), "not_bookmarked")
}
