package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/nkamau/elimu/core/comment"
)

type CommentRepository struct {
	db *sqlx.DB
}

var _ comment.Repository = (*CommentRepository)(nil) // interface compliance check

func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (repo CommentRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return comment.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo CommentRepository) QueryCourseComments(ctx context.Context, courseID string) ([]comment.Comment, error) {
	comments := make([]comment.Comment, 0)
	err := repo.db.SelectContext(ctx, &comments,
		`SELECT * FROM comment WHERE course_id = $1 ORDER BY created_at DESC`, courseID)
	if err != nil {
		return nil, errors.Wrap(err, "querying course comments")
	}
	return comments, nil
}

func (repo CommentRepository) CreateComment(ctx context.Context, cmt comment.Comment) (comment.Comment, error) {
	cmt.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO comment (id, course_id, user_id, user_name, content, sentiment, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		cmt.ID, cmt.CourseID, cmt.UserID, cmt.UserName, cmt.Content, cmt.Sentiment, cmt.CreatedAt, cmt.UpdatedAt,
	)
	if err != nil {
		return comment.Comment{}, errors.Wrap(err, "inserting comment")
	}
	return cmt, nil
}

func (repo CommentRepository) GetCommentByID(ctx context.Context, id string) (comment.Comment, error) {
	var cmt comment.Comment
	err := repo.db.GetContext(ctx, &cmt, `SELECT * FROM comment WHERE id = $1`, id)
	if err != nil {
		return comment.Comment{}, repo.trapNoRowsErr(err, "getting comment by ID")
	}
	return cmt, nil
}

func (repo CommentRepository) UpdateComment(ctx context.Context, cmt comment.Comment) (comment.Comment, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE comment SET content = $2, sentiment = $3, updated_at = $4 WHERE id = $1`,
		cmt.ID, cmt.Content, cmt.Sentiment, cmt.UpdatedAt,
	)
	if err != nil {
		return comment.Comment{}, errors.Wrap(err, "updating comment")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return comment.Comment{}, comment.ErrNotFound
	}
	return cmt, nil
}

func (repo CommentRepository) DeleteComment(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM comment WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting comment")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return comment.ErrNotFound
	}
	return nil
}
