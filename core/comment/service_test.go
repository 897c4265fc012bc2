package comment

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/nkamau/elimu/core"
	"github.com/nkamau/elimu/core/user"
)

// fakeRepo is an in-memory Repository for pipeline tests.
type fakeRepo struct {
	mu    sync.RWMutex
	table map[string]Comment
}

var _ Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{table: make(map[string]Comment)}
}

func (r *fakeRepo) QueryCourseComments(_ context.Context, courseID string) ([]Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comments := make([]Comment, 0)
	for _, cmt := range r.table {
		if cmt.CourseID == courseID {
			comments = append(comments, cmt)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].CreatedAt.After(comments[j].CreatedAt) })
	return comments, nil
}

func (r *fakeRepo) CreateComment(_ context.Context, cmt Comment) (Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cmt.ID = uuid.New().String()
	r.table[cmt.ID] = cmt
	return cmt, nil
}

func (r *fakeRepo) GetCommentByID(_ context.Context, id string) (Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if cmt, ok := r.table[id]; ok {
		return cmt, nil
	}
	return Comment{}, ErrNotFound
}

func (r *fakeRepo) UpdateComment(_ context.Context, cmt Comment) (Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.table[cmt.ID]; !ok {
		return Comment{}, ErrNotFound
	}
	r.table[cmt.ID] = cmt
	return cmt, nil
}

func (r *fakeRepo) DeleteComment(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.table[id]; !ok {
		return ErrNotFound
	}
	delete(r.table, id)
	return nil
}

// countingClassifier returns a fixed label and counts calls.
type countingClassifier struct {
	label Sentiment
	calls int
}

func (c *countingClassifier) Classify(context.Context, string) Sentiment {
	c.calls++
	return c.label
}

// recordingBroadcaster captures broadcast events.
type recordingBroadcaster struct {
	events []Event
}

func (b *recordingBroadcaster) Broadcast(_ string, event Event) {
	b.events = append(b.events, event)
}

func setup(label Sentiment) (*Service, *fakeRepo, *countingClassifier, *recordingBroadcaster) {
	repo := newFakeRepo()
	classifier := &countingClassifier{label: label}
	broadcaster := new(recordingBroadcaster)
	return NewService(repo, classifier, broadcaster), repo, classifier, broadcaster
}

var (
	aisha = user.User{ID: "usr1", Name: "Aisha", Email: "aisha@test.cd", Role: user.RoleStudent}
	musa  = user.User{ID: "usr2", Name: "Musa", Email: "musa@test.cd", Role: user.RoleStudent}
	anon  = user.User{}
)

func Test_Service_Create(t *testing.T) {
	ctx := context.Background()
	svc, _, classifier, broadcaster := setup(SentimentPositive)

	// anonymous callers are rejected before anything else runs
	if _, err := svc.Create(ctx, anon, "crs1", NewComment{Content: "hey"}); err != ErrUnauthorized {
		t.Errorf("Create() anonymous err = %v; want %v", err, ErrUnauthorized)
	}

	// blank content short-circuits: no classification, no broadcast
	_, err := svc.Create(ctx, aisha, "crs1", NewComment{Content: "   "})
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Create() blank content err = %v; want *core.ValidationError", err)
	}
	if classifier.calls != 0 {
		t.Errorf("classifier calls = %d; want 0", classifier.calls)
	}
	if len(broadcaster.events) != 0 {
		t.Errorf("broadcast events = %d; want 0", len(broadcaster.events))
	}

	cmt, err := svc.Create(ctx, aisha, "crs1", NewComment{Content: "  Great intro!  "})
	if err != nil {
		t.Fatalf("Create() err = %v", err)
	}
	if cmt.ID == "" {
		t.Error("Create() did not assign an ID")
	}
	if cmt.Content != "Great intro!" {
		t.Errorf("Content = %q; want trimmed %q", cmt.Content, "Great intro!")
	}
	if cmt.UserID != aisha.ID || cmt.UserName != aisha.Name {
		t.Errorf("author = (%q, %q); want (%q, %q)", cmt.UserID, cmt.UserName, aisha.ID, aisha.Name)
	}
	if cmt.Sentiment != SentimentPositive {
		t.Errorf("Sentiment = %q; want %q", cmt.Sentiment, SentimentPositive)
	}
	if classifier.calls != 1 {
		t.Errorf("classifier calls = %d; want 1", classifier.calls)
	}

	if len(broadcaster.events) != 1 {
		t.Fatalf("broadcast events = %d; want 1", len(broadcaster.events))
	}
	event := broadcaster.events[0]
	if event.Kind != EventCreated || event.CourseID != "crs1" || event.Comment == nil || event.Comment.ID != cmt.ID {
		t.Errorf("broadcast event = %+v; want created event carrying the full comment", event)
	}
}

func Test_Service_Update(t *testing.T) {
	ctx := context.Background()
	svc, _, classifier, broadcaster := setup(SentimentNegative)

	cmt, err := svc.Create(ctx, aisha, "crs1", NewComment{Content: "meh"})
	if err != nil {
		t.Fatalf("Create() err = %v", err)
	}
	broadcaster.events = nil
	classifier.calls = 0

	tests := []struct {
		name      string
		actor     user.User
		courseID  string
		commentID string
		wantErr   error
	}{
		{"anonymous", anon, "crs1", cmt.ID, ErrUnauthorized},
		{"unknown comment", aisha, "crs1", "nope", ErrNotFound},
		{"wrong course looks like not found", aisha, "crs2", cmt.ID, ErrNotFound},
		{"not the author", musa, "crs1", cmt.ID, ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Update(ctx, tt.actor, tt.courseID, tt.commentID, UpdateComment{Content: "edited"}); err != tt.wantErr {
				t.Errorf("Update() err = %v; want %v", err, tt.wantErr)
			}
		})
	}
	if classifier.calls != 0 {
		t.Errorf("classifier calls after rejected updates = %d; want 0", classifier.calls)
	}
	if len(broadcaster.events) != 0 {
		t.Errorf("broadcast events after rejected updates = %d; want 0", len(broadcaster.events))
	}

	// blank content is rejected after authorization
	_, err = svc.Update(ctx, aisha, "crs1", cmt.ID, UpdateComment{Content: " "})
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Update() blank content err = %v; want *core.ValidationError", err)
	}

	updated, err := svc.Update(ctx, aisha, "crs1", cmt.ID, UpdateComment{Content: "actually disappointing"})
	if err != nil {
		t.Fatalf("Update() err = %v", err)
	}
	if updated.Content != "actually disappointing" {
		t.Errorf("Content = %q; want %q", updated.Content, "actually disappointing")
	}
	if updated.Sentiment != SentimentNegative {
		t.Errorf("Sentiment = %q; want re-classified %q", updated.Sentiment, SentimentNegative)
	}
	if !updated.UpdatedAt.After(cmt.UpdatedAt) {
		t.Error("UpdatedAt was not bumped")
	}

	if len(broadcaster.events) != 1 {
		t.Fatalf("broadcast events = %d; want 1", len(broadcaster.events))
	}
	if event := broadcaster.events[0]; event.Kind != EventUpdated || event.Comment == nil {
		t.Errorf("broadcast event = %+v; want updated event carrying the full comment", event)
	}
}

func Test_Service_Delete(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, broadcaster := setup(SentimentNeutral)

	cmt, err := svc.Create(ctx, aisha, "crs1", NewComment{Content: "to be removed"})
	if err != nil {
		t.Fatalf("Create() err = %v", err)
	}
	broadcaster.events = nil

	tests := []struct {
		name      string
		actor     user.User
		courseID  string
		commentID string
		wantErr   error
	}{
		{"anonymous", anon, "crs1", cmt.ID, ErrUnauthorized},
		{"unknown comment", aisha, "crs1", "nope", ErrNotFound},
		{"wrong course looks like not found", aisha, "crs2", cmt.ID, ErrNotFound},
		{"not the author", musa, "crs1", cmt.ID, ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.Delete(ctx, tt.actor, tt.courseID, tt.commentID); err != tt.wantErr {
				t.Errorf("Delete() err = %v; want %v", err, tt.wantErr)
			}
		})
	}

	if err := svc.Delete(ctx, aisha, "crs1", cmt.ID); err != nil {
		t.Fatalf("Delete() err = %v", err)
	}
	if _, err := repo.GetCommentByID(ctx, cmt.ID); err != ErrNotFound {
		t.Errorf("GetCommentByID() after delete err = %v; want %v", err, ErrNotFound)
	}

	// deleted events carry the id only
	if len(broadcaster.events) != 1 {
		t.Fatalf("broadcast events = %d; want 1", len(broadcaster.events))
	}
	event := broadcaster.events[0]
	if event.Kind != EventDeleted || event.CommentID != cmt.ID || event.Comment != nil {
		t.Errorf("broadcast event = %+v; want id-only deleted event", event)
	}
}

func Test_Service_QueryByCourse(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, _ := setup(SentimentNeutral)

	now := time.Now().UTC()
	for i, content := range []string{"first", "second", "third"} {
		cmt := Comment{
			CourseID:  "crs1",
			UserID:    aisha.ID,
			UserName:  aisha.Name,
			Content:   content,
			Sentiment: SentimentNeutral,
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		}
		if _, err := repo.CreateComment(ctx, cmt); err != nil {
			t.Fatalf("CreateComment() err = %v", err)
		}
	}
	if _, err := repo.CreateComment(ctx, Comment{CourseID: "crs2", Content: "elsewhere", CreatedAt: now}); err != nil {
		t.Fatalf("CreateComment() err = %v", err)
	}

	comments, err := svc.QueryByCourse(ctx, "crs1")
	if err != nil {
		t.Fatalf("QueryByCourse() err = %v", err)
	}
	want := []string{"third", "second", "first"} // newest first
	if len(comments) != len(want) {
		t.Fatalf("QueryByCourse() len = %d; want %d", len(comments), len(want))
	}
	for i, cmt := range comments {
		if cmt.Content != want[i] {
			t.Errorf("comments[%d].Content = %q; want %q", i, cmt.Content, want[i])
		}
	}

	// an unknown course yields an empty, non-nil list
	comments, err = svc.QueryByCourse(ctx, "ghost")
	if err != nil {
		t.Fatalf("QueryByCourse() err = %v", err)
	}
	if comments == nil || len(comments) != 0 {
		t.Errorf("QueryByCourse(ghost) = %v; want empty list", comments)
	}
}
