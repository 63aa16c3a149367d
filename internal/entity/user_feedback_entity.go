package entity

import "time"

const (
	RatingLike    = "like"
	RatingDislike = "dislike"
)

type UserFeedback struct {
	FeedbackId          string
	SessionId           string
	Rating              string
	FeedbackText        string
	ConversationHistory []ConversationTurn
	Timestamp           time.Time
	Source              string
}
