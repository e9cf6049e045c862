package models

// Target kinds form a closed set; mentions and notifications reference
// their subject as a (kind, id) pair instead of an open-ended relation.
const (
	TargetTweet   = "tweet"
	TargetComment = "comment"
	TargetRetweet = "retweet"
	TargetFollow  = "follow"
)

// Target identifies the entity a mention or notification points at.
type Target struct {
	Type string
	ID   uint
}
