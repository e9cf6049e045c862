package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/models"
	"github.com/chirper-app/backend/internal/testutil"
)

func TestFollowLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresFollowRepository(db)

	alice := testutil.NewUser(t, db, "alice")
	bob := testutil.NewUser(t, db, "bob")

	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}))

	following, err := repo.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// not symmetric
	reverse, err := repo.IsFollowing(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, reverse)

	err = repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	require.NoError(t, repo.DeleteFollow(alice.ID, bob.ID))
	assert.ErrorIs(t, repo.DeleteFollow(alice.ID, bob.ID), gorm.ErrRecordNotFound)
}

func TestFollowersAndFollowing(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresFollowRepository(db)

	alice := testutil.NewUser(t, db, "alice")
	bob := testutil.NewUser(t, db, "bob")
	carol := testutil.NewUser(t, db, "carol")

	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: carol.ID}))
	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: bob.ID, FollowingID: carol.ID}))
	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: carol.ID, FollowingID: alice.ID}))

	followers, err := repo.GetFollowers(carol.ID)
	require.NoError(t, err)
	assert.Len(t, followers, 2)

	followersCount, err := repo.GetFollowersCount(carol.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), followersCount)

	followingIDs, err := repo.GetFollowingIDs(carol.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{alice.ID}, followingIDs)

	followingCount, err := repo.GetFollowingCount(carol.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), followingCount)
}
