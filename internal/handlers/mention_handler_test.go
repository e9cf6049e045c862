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

func newMentionHandler(db *gorm.DB) (*MentionHandler, *services.MentionService) {
	notifier := services.NewNotifier(repositories.NewPostgresNotificationRepository(db))
	svc := services.NewMentionService(
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresMentionRepository(db),
		notifier,
	)
	return NewMentionHandler(svc), svc
}

func TestGetMentions(t *testing.T) {
	db := testutil.NewDB(t)
	h, svc := newMentionHandler(db)

	alice := testutil.NewUser(t, db, "alice")
	bob := testutil.NewUser(t, db, "bob")
	tweet := testutil.NewTweet(t, db, bob, "ping @alice")
	svc.Extract(bob.ID, tweet.Content, models.Target{Type: models.TargetTweet, ID: tweet.ID})

	c, rec := newContext(t, http.MethodGet, "/api/v1/mentions", "", alice)
	require.NoError(t, h.GetMentions(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":1`)
	assert.Contains(t, rec.Body.String(), `"actor":"bob"`)
	assert.Contains(t, rec.Body.String(), `"content_object":"tweet"`)

	// bob has no mentions of his own
	c, rec = newContext(t, http.MethodGet, "/api/v1/mentions", "", bob)
	require.NoError(t, h.GetMentions(c))
	assert.Contains(t, rec.Body.String(), `"count":0`)
}
