package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/models"
	"github.com/chirper-app/backend/internal/pagination"
	"github.com/chirper-app/backend/internal/repositories"
	"github.com/chirper-app/backend/internal/services"
	"github.com/chirper-app/backend/internal/testutil"
)

func newFeedHandler(db *gorm.DB) *FeedHandler {
	feed := services.NewFeedService(
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresFollowRepository(db),
		repositories.NewPostgresTweetRepository(db),
		repositories.NewPostgresRetweetRepository(db),
		repositories.NewPostgresBookmarkRepository(db),
		repositories.NewPostgresEngagementRepository(db),
	)
	return NewFeedHandler(feed)
}

func TestGetFeedPagination(t *testing.T) {
	db := testutil.NewDB(t)
	h := newFeedHandler(db)

	alice := testutil.NewUser(t, db, "alice")
	for i := 0; i < pagination.PageSize+2; i++ {
		testutil.NewTweet(t, db, alice, "post "+strconv.Itoa(i))
	}

	c, rec := newContext(t, http.MethodGet, "/api/v1/feed", "", alice)
	require.NoError(t, h.GetFeed(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Count    int               `json:"count"`
		Next     *string           `json:"next"`
		Previous *string           `json:"previous"`
		Results  []json.RawMessage `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, pagination.PageSize+2, page.Count)
	assert.Len(t, page.Results, pagination.PageSize)
	require.NotNil(t, page.Next)
	assert.Nil(t, page.Previous)

	c, rec = newContext(t, http.MethodGet, "/api/v1/feed?page=2", "", alice)
	require.NoError(t, h.GetFeed(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Results, 2)
	assert.Nil(t, page.Next)
	require.NotNil(t, page.Previous)
}

func TestGetFeedExcludesStrangers(t *testing.T) {
	db := testutil.NewDB(t)
	h := newFeedHandler(db)

	alice := testutil.NewUser(t, db, "alice")
	bob := testutil.NewUser(t, db, "bob")
	carol := testutil.NewUser(t, db, "carol")
	require.NoError(t, db.Create(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}).Error)
	testutil.NewTweet(t, db, bob, "from bob")
	testutil.NewTweet(t, db, carol, "from carol")

	c, rec := newContext(t, http.MethodGet, "/api/v1/feed", "", alice)
	require.NoError(t, h.GetFeed(c))
	assert.Contains(t, rec.Body.String(), "from bob")
	assert.NotContains(t, rec.Body.String(), "from carol")
}
