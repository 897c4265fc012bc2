package comment

import (
	"context"
	"errors"
	"time"

	"github.com/nkamau/elimu/core"
	"github.com/nkamau/elimu/core/user"
)

var (
	// errors
	ErrNotFound     = errors.New("comment not found")
	ErrForbidden    = errors.New("permission denied")
	ErrUnauthorized = errors.New("user not authenticated")

	errContentRequired = errors.New("content is required")
)

type (
	// Classifier labels a piece of text with a sentiment.
	// It always succeeds: every failure mode resolves to SentimentNeutral.
	Classifier interface {
		Classify(ctx context.Context, text string) Sentiment
	}

	// Repository persists comments. It is authorization-blind;
	// the Service enforces ownership.
	Repository interface {
		// QueryCourseComments returns the course's comments, newest first.
		QueryCourseComments(ctx context.Context, courseID string) ([]Comment, error)
		CreateComment(ctx context.Context, cmt Comment) (Comment, error)
		GetCommentByID(ctx context.Context, id string) (Comment, error)
		UpdateComment(ctx context.Context, cmt Comment) (Comment, error)
		DeleteComment(ctx context.Context, id string) error
	}

	// Service runs the comment write pipeline:
	// authorize, validate, enrich, persist, broadcast.
	Service struct {
		repo        Repository
		classifier  Classifier
		broadcaster Broadcaster
	}
)

func NewService(repo Repository, classifier Classifier, broadcaster Broadcaster) *Service {
	return &Service{
		repo:        repo,
		classifier:  classifier,
		broadcaster: broadcaster,
	}
}

func (svc *Service) QueryByCourse(ctx context.Context, courseID string) ([]Comment, error) {
	return svc.repo.QueryCourseComments(ctx, courseID)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Comment, error) {
	return svc.repo.GetCommentByID(ctx, id)
}

// Create posts a new comment on the course and broadcasts a created event.
// Sentiment enrichment is best-effort and never fails the write.
func (svc *Service) Create(ctx context.Context, author user.User, courseID string, nc NewComment) (Comment, error) {
	if author.IsAnonymous() {
		return Comment{}, ErrUnauthorized
	}
	if nc.Content = core.CleanString(nc.Content); nc.Content == "" {
		return Comment{}, core.NewValidationError(errContentRequired, core.FieldError{Field: "content", Error: errContentRequired.Error()})
	}

	now := time.Now().UTC()
	cmt := Comment{
		CourseID:  courseID,
		UserID:    author.ID,
		UserName:  author.Name,
		Content:   nc.Content,
		Sentiment: svc.classifier.Classify(ctx, nc.Content),
		CreatedAt: now,
		UpdatedAt: now,
	}

	cmt, err := svc.repo.CreateComment(ctx, cmt)
	if err != nil {
		return Comment{}, err
	}

	svc.broadcaster.Broadcast(courseID, newCommentEvent(EventCreated, cmt))
	return cmt, nil
}

// Update replaces the comment's content and broadcasts an updated event.
// Only the comment's author may update it; a comment posted on another
// course than the requested one does not exist as far as the caller knows.
func (svc *Service) Update(ctx context.Context, actor user.User, courseID, commentID string, uc UpdateComment) (Comment, error) {
	if actor.IsAnonymous() {
		return Comment{}, ErrUnauthorized
	}

	cmt, err := svc.repo.GetCommentByID(ctx, commentID)
	if err != nil {
		return Comment{}, err
	}
	if cmt.CourseID != courseID {
		return Comment{}, ErrNotFound
	}
	if cmt.UserID != actor.ID {
		return Comment{}, ErrForbidden
	}

	if uc.Content = core.CleanString(uc.Content); uc.Content == "" {
		return Comment{}, core.NewValidationError(errContentRequired, core.FieldError{Field: "content", Error: errContentRequired.Error()})
	}

	cmt.Content = uc.Content
	cmt.Sentiment = svc.classifier.Classify(ctx, uc.Content)
	cmt.UpdatedAt = time.Now().UTC()

	cmt, err = svc.repo.UpdateComment(ctx, cmt)
	if err != nil {
		return Comment{}, err
	}

	svc.broadcaster.Broadcast(courseID, newCommentEvent(EventUpdated, cmt))
	return cmt, nil
}

// Delete removes the comment and broadcasts a deleted event carrying its id.
func (svc *Service) Delete(ctx context.Context, actor user.User, courseID, commentID string) error {
	if actor.IsAnonymous() {
		return ErrUnauthorized
	}

	cmt, err := svc.repo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if cmt.CourseID != courseID {
		return ErrNotFound
	}
	if cmt.UserID != actor.ID {
		return ErrForbidden
	}

	if err = svc.repo.DeleteComment(ctx, commentID); err != nil {
		return err
	}

	svc.broadcaster.Broadcast(courseID, newDeletedEvent(courseID, commentID))
	return nil
}
