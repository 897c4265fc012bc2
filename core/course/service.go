package course

import (
	"context"
	"errors"
	"time"

	"github.com/nkamau/elimu/core/user"
)

var ErrNotFound = errors.New("course not found")

type (
	Repository interface {
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		// QueryAllCourses returns all courses, newest first.
		QueryAllCourses(ctx context.Context) ([]Course, error)
		GetCourseByID(ctx context.Context, id string) (Course, error)
		UpdateCourse(ctx context.Context, crs Course) (Course, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create publishes a new course on behalf of the instructor.
// The caller is responsible for checking that the instructor may publish.
func (svc *Service) Create(ctx context.Context, instructor user.User, nc NewCourse) (Course, error) {
	now := time.Now().UTC()
	crs := Course{
		Title:          nc.Title,
		Description:    nc.Description,
		Duration:       nc.Duration,
		Difficulty:     nc.Difficulty,
		Categories:     nc.Categories,
		ThumbnailURL:   nc.ThumbnailURL,
		VideoURL:       nc.VideoURL,
		InstructorID:   instructor.ID,
		InstructorName: instructor.Name,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return svc.repo.CreateCourse(ctx, crs)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryAllCourses(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

// Update applies the set fields of `uc` onto the stored course.
func (svc *Service) Update(ctx context.Context, crs Course, uc UpdateCourse) (Course, error) {
	if uc.Title != "" {
		crs.Title = uc.Title
	}
	if uc.Description != "" {
		crs.Description = uc.Description
	}
	if uc.Duration != "" {
		crs.Duration = uc.Duration
	}
	if uc.Difficulty != "" {
		crs.Difficulty = uc.Difficulty
	}
	if uc.Categories != nil {
		crs.Categories = uc.Categories
	}
	if uc.ThumbnailURL != "" {
		crs.ThumbnailURL = uc.ThumbnailURL
	}
	if uc.VideoURL != "" {
		crs.VideoURL = uc.VideoURL
	}
	crs.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateCourse(ctx, crs)
}
