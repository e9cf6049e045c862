package models

// Engagement carries the per-tweet counters and per-viewer flags the
// aggregator computes in batch. CommentsCount covers top-level comments
// only (replies are not counted).
type Engagement struct {
	LikesCount     int64 `json:"likes_count"`
	CommentsCount  int64 `json:"comments_count"`
	RetweetsCount  int64 `json:"retweets_count"`
	BookmarksCount int64 `json:"bookmarks_count"`
	IsLiked        bool  `json:"is_liked"`
	IsRetweeted    bool  `json:"is_retweeted"`
	IsBookmarked   bool  `json:"is_bookmarked"`
}
