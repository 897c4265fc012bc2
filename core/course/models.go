package course

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nkamau/elimu/core"
)

// Difficulties
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

var AllDifficulties = []string{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

type Course struct {
	ID             string    `json:"id" db:"id"`
	Title          string    `json:"title" db:"title"`
	Description    string    `json:"description" db:"description"`
	Duration       string    `json:"duration" db:"duration"`
	Difficulty     string    `json:"difficulty" db:"difficulty"`
	Categories     []string  `json:"categories" db:"categories"`
	ThumbnailURL   string    `json:"thumbnailUrl" db:"thumbnail_url"`
	VideoURL       string    `json:"videoUrl" db:"video_url"`
	InstructorID   string    `json:"instructorId" db:"instructor_id"`
	InstructorName string    `json:"instructorName" db:"instructor_name"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"` // UTC
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"` // UTC
}

// NewCourse contains information needed to publish a new Course.
type NewCourse struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Duration     string   `json:"duration"`
	Difficulty   string   `json:"difficulty" validate:"omitempty,difficulty"`
	Categories   []string `json:"categories"`
	ThumbnailURL string   `json:"thumbnailUrl" validate:"omitempty,url"`
	VideoURL     string   `json:"videoUrl" validate:"omitempty,url"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	if nc.Difficulty == "" {
		nc.Difficulty = DifficultyBeginner
	}
	nc.Categories = cleanCategories(nc.Categories)
	return validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
// Empty fields keep their stored value.
type UpdateCourse struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Duration     string   `json:"duration"`
	Difficulty   string   `json:"difficulty" validate:"omitempty,difficulty"`
	Categories   []string `json:"categories"`
	ThumbnailURL string   `json:"thumbnailUrl" validate:"omitempty,url"`
	VideoURL     string   `json:"videoUrl" validate:"omitempty,url"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate) error {
	uc.Title = core.CleanString(uc.Title)
	uc.Description = core.CleanString(uc.Description)
	uc.Categories = cleanCategories(uc.Categories)
	return validate.Struct(uc)
}

func cleanCategories(categories []string) []string {
	if categories == nil {
		return nil
	}
	cleaned := make([]string, 0, len(categories))
	for _, cat := range categories {
		if cat = core.CleanString(cat); cat != "" {
			cleaned = append(cleaned, cat)
		}
	}
	return cleaned
}
