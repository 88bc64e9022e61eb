package validation

import (
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
	translator   ut.Translator
)

func getTranslator() ut.Translator {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	return trans
}

// Validator returns the shared validator with english translations
// registered.
func Validator() (*validator.Validate, ut.Translator) {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		translator = getTranslator()
		_ = enTranslations.RegisterDefaultTranslations(validate, translator)
	})

	return validate, translator
}

func TranslateError(err error, trans ut.Translator) (errs []string) {
	if err == nil {
		return nil
	}

	validationErrors := validator.ValidationErrors{}

	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			translatedErr := e.Translate(trans)
			errs = append(errs, translatedErr)
		}
	}

	return errs
}

// Struct validates value and folds every translated failure into a single
// error.
func Struct(value any) error {
	v, trans := Validator()

	err := v.Struct(value)

	if err == nil {
		return nil
	}

	if messages := TranslateError(err, trans); len(messages) > 0 {
		return errors.New(strings.Join(messages, "; "))
	}

	return errors.Wrap(err, "validation failed")
}
