package repositories

import (
	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/models"
)

// EngagementRepository computes per-tweet counters and per-viewer flags
// for a batch of tweets. Pure read, no side effects.
type EngagementRepository interface {
	ForTweets(tweetIDs []uint, viewerID uint) (map[uint]models.Engagement, error)
}

type postgresEngagementRepository struct {
	db *gorm.DB
}

func NewPostgresEngagementRepository(db *gorm.DB) EngagementRepository {
	return &postgresEngagementRepository{db: db}
}

type tweetCount struct {
	TweetID uint
	N       int64
}

// ForTweets runs one GROUP BY query per counter family and one IN query
// per viewer flag, regardless of batch size. Comments are counted at the
// top level only. A viewerID of 0 means anonymous: flag queries are
// skipped and every flag stays false.
func (r *postgresEngagementRepository) ForTweets(tweetIDs []uint, viewerID uint) (map[uint]models.Engagement, error) {
	result := make(map[uint]models.Engagement, len(tweetIDs))
	if len(tweetIDs) == 0 {
		return result, nil
	}
	for _, id := range tweetIDs {
		result[id] = models.Engagement{}
	}

	apply := func(model any, extraCond string, set func(e *models.Engagement, n int64)) error {
		var rows []tweetCount
		q := r.db.Model(model).
			Select("tweet_id, COUNT(*) AS n").
			Where("tweet_id IN ?", tweetIDs)
		if extraCond != "" {
			q = q.Where(extraCond)
		}
		if err := q.Group("tweet_id").Scan(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			e := result[row.TweetID]
			set(&e, row.N)
			result[row.TweetID] = e
		}
		return nil
	}

	if err := apply(&models.Like{}, "", func(e *models.Engagement, n int64) { e.LikesCount = n }); err != nil {
		return nil, err
	}
	if err := apply(&models.Comment{}, "parent_id IS NULL", func(e *models.Engagement, n int64) { e.CommentsCount = n }); err != nil {
		return nil, err
	}
	if err := apply(&models.Retweet{}, "", func(e *models.Engagement, n int64) { e.RetweetsCount = n }); err != nil {
		return nil, err
	}
	if err := apply(&models.Bookmark{}, "", func(e *models.Engagement, n int64) { e.BookmarksCount = n }); err != nil {
		return nil, err
	}

	if viewerID == 0 {
		return result, nil
	}

	flag := func(model any, set func(e *models.Engagement)) error {
		var ids []uint
		if err := r.db.Model(model).
			Where("user_id = ? AND tweet_id IN ?", viewerID, tweetIDs).
			Pluck("tweet_id", &ids).Error; err != nil {
			return err
		}
		for _, id := range ids {
			e := result[id]
			set(&e)
			result[id] = e
		}
		return nil
	}

	if err := flag(&models.Like{}, func(e *models.Engagement) { e.IsLiked = true }); err != nil {
		return nil, err
	}
	if err := flag(&models.Retweet{}, func(e *models.Engagement) { e.IsRetweeted = true }); err != nil {
		return nil, err
	}
	if err := flag(&models.Bookmark{}, func(e *models.Engagement) { e.IsBookmarked = true }); err != nil {
		return nil, err
	}

	return result, nil
}
