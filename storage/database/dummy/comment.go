package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/nkamau/elimu/core/comment"
)

type commentRepository struct {
	db *commentTable
}

var _ comment.Repository = (*commentRepository)(nil) // interface compliance check

func NewCommentRepository(db *DB) comment.Repository {
	return &commentRepository{db: db.comment}
}

func (repo *commentRepository) QueryCourseComments(_ context.Context, courseID string) ([]comment.Comment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	comments := make([]comment.Comment, 0)
	for _, cmt := range repo.db.table {
		if cmt.CourseID == courseID {
			comments = append(comments, *cmt)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].CreatedAt.After(comments[j].CreatedAt) })
	return comments, nil
}

func (repo *commentRepository) CreateComment(_ context.Context, cmt comment.Comment) (comment.Comment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	cmt.ID = uuid.New().String()
	repo.db.table[cmt.ID] = &cmt
	return cmt, nil
}

func (repo *commentRepository) GetCommentByID(_ context.Context, id string) (comment.Comment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if cmt, ok := repo.db.table[id]; ok {
		return *cmt, nil
	}
	return comment.Comment{}, comment.ErrNotFound
}

func (repo *commentRepository) UpdateComment(_ context.Context, cmt comment.Comment) (comment.Comment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[cmt.ID]; !ok {
		return comment.Comment{}, comment.ErrNotFound
	}
	repo.db.table[cmt.ID] = &cmt
	return cmt, nil
}

func (repo *commentRepository) DeleteComment(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return comment.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
