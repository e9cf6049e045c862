package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/models"
	"github.com/chirper-app/backend/internal/repositories"
	"github.com/chirper-app/backend/internal/services"
	"github.com/chirper-app/backend/internal/testutil"
)

func newFollowHandler(db *gorm.DB) *FollowHandler {
	return NewFollowHandler(
		repositories.NewPostgresFollowRepository(db),
		repositories.NewPostgresUserRepository(db),
		services.NewNotifier(repositories.NewPostgresNotificationRepository(db)),
	)
}

func TestFollowUnfollowRoundTrip(t *testing.T) {
	db := testutil.NewDB(t)
	h := newFollowHandler(db)

	alice := testutil.NewUser(t, db, "alice")
	testutil.NewUser(t, db, "bob")

	c, rec := newContext(t, http.MethodPost, "/", "", alice)
	c.SetParamNames("username")
	c.SetParamValues("bob")
	require.NoError(t, h.Follow(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	// the followed user is notified
	var notification models.Notification
	require.NoError(t, db.First(&notification).Error)
	assert.Equal(t, models.VerbFollowed, notification.Verb)

	// following twice is rejected
	c, _ = newContext(t, http.MethodPost, "/", "", alice)
	c.SetParamNames("username")
	c.SetParamValues("bob")
	requireAppError(t, h.Follow(c), "already_following")

	c, rec = newContext(t, http.MethodDelete, "/", "", alice)
	c.SetParamNames("username")
	c.SetParamValues("bob")
	require.NoError(t, h.Unfollow(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c, _ = newContext(t, http.MethodDelete, "/", "", alice)
	c.SetParamNames("username")
	c.SetParamValues("bob")
	requireAppError(t, h.Unfollow(c), "not_following")
}

func TestSelfFollowRejected(t *testing.T) {
	db := testutil.NewDB(t)
	h := newFollowHandler(db)
	alice := testutil.NewUser(t, db, "alice")

	c, _ := newContext(t, http.MethodPost, "/", "", alice)
	c.SetParamNames("username")
	c.SetParamValues("alice")
	requireAppError(t, h.Follow(c), "self_follow")

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFollowUnknownUser(t *testing.T) {
	db := testutil.NewDB(t)
	h := newFollowHandler(db)
	alice := testutil.NewUser(t, db, "alice")

	c, _ := newContext(t, http.MethodPost, "/", "", alice)
	c.SetParamNames("username")
	c.SetParamValues("ghost")
	requireAppError(t, h.Follow(c), "user_not_found")
}

func TestGetFollowersEnvelope(t *testing.T) {
	db := testutil.NewDB(t)
	h := newFollowHandler(db)

	alice := testutil.NewUser(t, db, "alice")
	bob := testutil.NewUser(t, db, "bob")
	carol := testutil.NewUser(t, db, "carol")
	require.NoError(t, db.Create(&models.Follow{FollowerID: alice.ID, FollowingID: carol.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: bob.ID, FollowingID: carol.ID}).Error)

	c, rec := newContext(t, http.MethodGet, "/api/v1/users/carol/followers", "", alice)
	c.SetParamNames("username")
	c.SetParamValues("carol")
	require.NoError(t, h.GetFollowers(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":2`)
	assert.Contains(t, rec.Body.String(), `"alice"`)
	assert.Contains(t, rec.Body.String(), `"bob"`)
}
