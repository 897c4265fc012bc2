package comment

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nkamau/elimu/core"
)

// Sentiment labels a comment's tone as reported by the classification service.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentMixed    Sentiment = "mixed"
)

var AllSentiments = []Sentiment{SentimentPositive, SentimentNegative, SentimentNeutral, SentimentMixed}

func (s Sentiment) Valid() bool {
	for _, known := range AllSentiments {
		if s == known {
			return true
		}
	}
	return false
}

type Comment struct {
	ID        string    `json:"id" db:"id"`
	CourseID  string    `json:"courseId" db:"course_id"`
	UserID    string    `json:"userId" db:"user_id"`
	UserName  string    `json:"userName" db:"user_name"`
	Content   string    `json:"content" db:"content"`
	Sentiment Sentiment `json:"sentiment" db:"sentiment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"` // UTC
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"` // UTC
}

// NewComment contains information needed to post a new Comment.
type NewComment struct {
	Content string `json:"content" validate:"required"`
}

func (nc *NewComment) Validate(validate *validator.Validate) error {
	nc.Content = core.CleanString(nc.Content)
	return validate.Struct(nc)
}

// UpdateComment defines what information may be provided to modify an existing Comment.
type UpdateComment struct {
	Content string `json:"content" validate:"required"`
}

func (uc *UpdateComment) Validate(validate *validator.Validate) error {
	uc.Content = core.CleanString(uc.Content)
	return validate.Struct(uc)
}

// EventKind tags a comment Event.
type EventKind string

const (
	EventCreated EventKind = "created"
	EventUpdated EventKind = "updated"
	EventDeleted EventKind = "deleted"
)

// Event is an ephemeral comment notification fanned out to course subscribers.
// Created and updated events carry the full comment; deleted events carry
// the comment id only.
type Event struct {
	Kind      EventKind
	CourseID  string
	Comment   *Comment
	CommentID string
}

func newCommentEvent(kind EventKind, cmt Comment) Event {
	return Event{
		Kind:      kind,
		CourseID:  cmt.CourseID,
		Comment:   &cmt,
		CommentID: cmt.ID,
	}
}

func newDeletedEvent(courseID, commentID string) Event {
	return Event{
		Kind:      EventDeleted,
		CourseID:  courseID,
		CommentID: commentID,
	}
}
