package course

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/nkamau/elimu/core"
)

var (
	difficultyTag  = "difficulty"
	difficultyText = "invalid difficulty"
)

// InitValidators registers this package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(difficultyTag, difficultyValidation)
	core.RegisterCustomTranslation(validate, translator, difficultyTag, difficultyText)
}

// difficultyValidation checks that the provided difficulty is one of AllDifficulties.
func difficultyValidation(fl validator.FieldLevel) bool {
	difficulty := fl.Field().String()
	for _, d := range AllDifficulties {
		if difficulty == d {
			return true
		}
	}
	return false
}
