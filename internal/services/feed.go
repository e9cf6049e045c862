package services

import (
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/apperrors"
	"github.com/chirper-app/backend/internal/models"
	"github.com/chirper-app/backend/internal/repositories"
)

// TweetItem is the unified "post" shape for a plain tweet.
type TweetItem struct {
	ID            uint          `json:"id"`
	Type          string        `json:"type"`
	Author        models.Author `json:"author"`
	Content       string        `json:"content"`
	Image         string        `json:"image"`
	LikesCount    int64         `json:"likes_count"`
	CommentsCount int64         `json:"comments_count"`
	RetweetsCount int64         `json:"retweets_count"`
	IsLiked       bool          `json:"is_liked"`
	IsRetweeted   bool          `json:"is_retweeted"`
	IsBookmarked  bool          `json:"is_bookmarked"`
	CreatedAt     time.Time     `json:"created_at"`
}

// RetweetItem is the unified "post" shape for a retweet. Engagement on
// the nested original tweet reflects the original, not the retweet.
type RetweetItem struct {
	ID            uint          `json:"id"`
	Type          string        `json:"type"`
	Author        models.Author `json:"author"`
	Quote         string        `json:"quote"`
	OriginalTweet TweetItem     `json:"original_tweet"`
	CreatedAt     time.Time     `json:"created_at"`
}

// FeedService merges tweets and retweets into reverse-chronological
// post streams: the home feed, a user's timeline and the bookmark list.
type FeedService struct {
	users      repositories.UserRepository
	follows    repositories.FollowRepository
	tweets     repositories.TweetRepository
	retweets   repositories.RetweetRepository
	bookmarks  repositories.BookmarkRepository
	engagement repositories.EngagementRepository
}

func NewFeedService(
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	tweetRepo repositories.TweetRepository,
	retweetRepo repositories.RetweetRepository,
	bookmarkRepo repositories.BookmarkRepository,
	engagementRepo repositories.EngagementRepository,
) *FeedService {
	return &FeedService{
		users:      userRepo,
		follows:    followRepo,
		tweets:     tweetRepo,
		retweets:   retweetRepo,
		bookmarks:  bookmarkRepo,
		engagement: engagementRepo,
	}
}

// HomeFeed returns the full merged post sequence for a viewer: posts
// authored by the viewer and everyone the viewer follows, newest first.
func (s *FeedService) HomeFeed(viewerID uint) ([]any, error) {
	scope, err := s.follows.GetFollowingIDs(viewerID)
	if err != nil {
		return nil, err
	}
	scope = append(scope, viewerID)
	return s.compose(scope, viewerID)
}

// UserPosts returns the post sequence authored by one user (the profile
// timeline), with engagement flags scoped to the viewer.
func (s *FeedService) UserPosts(username string, viewerID uint) ([]any, error) {
	user, err := s.users.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user_not_found", "User not found")
		}
		return nil, err
	}
	return s.compose([]uint{user.ID}, viewerID)
}

// Bookmarked returns the viewer's bookmarked tweets ordered by bookmark
// creation time (not post creation time).
func (s *FeedService) Bookmarked(viewerID uint) ([]any, error) {
	bookmarks, err := s.bookmarks.GetBookmarksByUserID(viewerID)
	if err != nil {
		return nil, err
	}

	tweetIDs := make([]uint, len(bookmarks))
	for i, b := range bookmarks {
		tweetIDs[i] = b.TweetID
	}
	engagement, err := s.engagement.ForTweets(tweetIDs, viewerID)
	if err != nil {
		return nil, err
	}

	items := make([]any, len(bookmarks))
	for i, b := range bookmarks {
		items[i] = NewTweetItem(&b.Tweet, engagement[b.TweetID])
	}
	return items, nil
}

// compose fetches tweets and retweets authored by scope, attaches batch
// engagement (retweets keyed by the underlying tweet) and merges both
// lists newest first. The stable sort makes the timestamp tie-break
// deterministic: tweets before retweets, ascending id within a kind.
func (s *FeedService) compose(scope []uint, viewerID uint) ([]any, error) {
	tweets, err := s.tweets.GetTweetsByAuthorIDs(scope)
	if err != nil {
		return nil, err
	}
	retweets, err := s.retweets.GetRetweetsByAuthorIDs(scope)
	if err != nil {
		return nil, err
	}

	idSet := make(map[uint]bool, len(tweets)+len(retweets))
	tweetIDs := make([]uint, 0, len(tweets)+len(retweets))
	for _, t := range tweets {
		if !idSet[t.ID] {
			idSet[t.ID] = true
			tweetIDs = append(tweetIDs, t.ID)
		}
	}
	for _, rt := range retweets {
		if !idSet[rt.TweetID] {
			idSet[rt.TweetID] = true
			tweetIDs = append(tweetIDs, rt.TweetID)
		}
	}

	engagement, err := s.engagement.ForTweets(tweetIDs, viewerID)
	if err != nil {
		return nil, err
	}

	type entry struct {
		createdAt time.Time
		item      any
	}
	entries := make([]entry, 0, len(tweets)+len(retweets))
	for i := range tweets {
		t := &tweets[i]
		entries = append(entries, entry{t.CreatedAt, NewTweetItem(t, engagement[t.ID])})
	}
	for i := range retweets {
		rt := &retweets[i]
		entries = append(entries, entry{rt.CreatedAt, RetweetItem{
			ID:            rt.ID,
			Type:          "retweet",
			Author:        rt.User.ToAuthor(),
			Quote:         rt.Quote,
			OriginalTweet: NewTweetItem(&rt.Tweet, engagement[rt.TweetID]),
			CreatedAt:     rt.CreatedAt,
		}})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].createdAt.After(entries[j].createdAt)
	})

	items := make([]any, len(entries))
	for i, e := range entries {
		items[i] = e.item
	}
	return items, nil
}

// NewTweetItem builds the unified post shape for a single tweet.
func NewTweetItem(t *models.Tweet, e models.Engagement) TweetItem {
	return TweetItem{
		ID:            t.ID,
		Type:          "tweet",
		Author:        t.User.ToAuthor(),
		Content:       t.Content,
		Image:         t.Image,
		LikesCount:    e.LikesCount,
		CommentsCount: e.CommentsCount,
		RetweetsCount: e.RetweetsCount,
		IsLiked:       e.IsLiked,
		IsRetweeted:   e.IsRetweeted,
		IsBookmarked:  e.IsBookmarked,
		CreatedAt:     t.CreatedAt,
	}
}
