package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/nkamau/elimu/core/course"
)

// dbCourse mirrors course.Course with driver-friendly column types.
type dbCourse struct {
	ID             string         `db:"id"`
	Title          string         `db:"title"`
	Description    string         `db:"description"`
	Duration       string         `db:"duration"`
	Difficulty     string         `db:"difficulty"`
	Categories     pq.StringArray `db:"categories"`
	ThumbnailURL   string         `db:"thumbnail_url"`
	VideoURL       string         `db:"video_url"`
	InstructorID   string         `db:"instructor_id"`
	InstructorName string         `db:"instructor_name"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (c dbCourse) toCore() course.Course {
	return course.Course{
		ID:             c.ID,
		Title:          c.Title,
		Description:    c.Description,
		Duration:       c.Duration,
		Difficulty:     c.Difficulty,
		Categories:     c.Categories,
		ThumbnailURL:   c.ThumbnailURL,
		VideoURL:       c.VideoURL,
		InstructorID:   c.InstructorID,
		InstructorName: c.InstructorName,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

type CourseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*CourseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (repo CourseRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return course.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo CourseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	crs.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO course (id, title, description, duration, difficulty, categories,
		                     thumbnail_url, video_url, instructor_id, instructor_name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		crs.ID, crs.Title, crs.Description, crs.Duration, crs.Difficulty, pq.Array(crs.Categories),
		crs.ThumbnailURL, crs.VideoURL, crs.InstructorID, crs.InstructorName, crs.CreatedAt, crs.UpdatedAt,
	)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return crs, nil
}

func (repo CourseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	var rows []dbCourse
	err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM course ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}

	courses := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, row.toCore())
	}
	return courses, nil
}

func (repo CourseRepository) GetCourseByID(ctx context.Context, id string) (course.Course, error) {
	var row dbCourse
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM course WHERE id = $1`, id)
	if err != nil {
		return course.Course{}, repo.trapNoRowsErr(err, "getting course by ID")
	}
	return row.toCore(), nil
}

func (repo CourseRepository) UpdateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE course
		 SET title = $2, description = $3, duration = $4, difficulty = $5, categories = $6,
		     thumbnail_url = $7, video_url = $8, updated_at = $9
		 WHERE id = $1`,
		crs.ID, crs.Title, crs.Description, crs.Duration, crs.Difficulty, pq.Array(crs.Categories),
		crs.ThumbnailURL, crs.VideoURL, crs.UpdatedAt,
	)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return crs, nil
}
