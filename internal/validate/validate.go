// Package validate wraps go-playground/validator for single-attribute checks
// and translates its field errors into English domain validation errors.
package validate

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/pjatk/academic-registry/internal/domain/shared"
	"github.com/pjatk/academic-registry/pkg/timeutil"
)

// Custom validation tags.
const (
	NotBlank  = "notblank"
	NotFuture = "notfuture"
)

var (
	v     *validator.Validate
	trans ut.Translator
)

// Instantiate the validator for use.
func init() {
	v = validator.New()

	// Register the english error messages for validation errors.
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	_ = v.RegisterValidation(NotBlank, notBlankValidation)
	_ = v.RegisterValidation(NotFuture, notFutureValidation)

	registerCustomTranslation(NotBlank, "{0} cannot be empty")
	registerCustomTranslation(NotFuture, "{0} cannot be in the future")
}

func registerCustomTranslation(tag, text string) {
	_ = v.RegisterTranslation(
		tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Validators

// notBlankValidation rejects strings made only of whitespace.
func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

// notFutureValidation rejects times strictly later than the process clock.
func notFutureValidation(fl validator.FieldLevel) bool {
	if t, ok := fl.Field().Interface().(time.Time); ok {
		return !timeutil.IsAfterNow(t)
	}
	return false
}

// Field checks value against the validator tag and returns a
// shared.ErrValidation domain error describing the first failure.
func Field(domain, op, field string, value any, tag string) error {
	err := v.Var(value, tag)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return shared.NewValidationError(domain, op, field, nil, err.Error())
	}

	fe := ves[0]
	// Var has no struct field name, so translations start right after {0}.
	msg := field + fe.Translate(trans)
	return shared.NewValidationError(domain, op, field, reasonFor(fe.Tag()), msg)
}

func reasonFor(tag string) error {
	switch tag {
	case NotBlank, "required":
		return shared.ErrEmptyValue
	case NotFuture:
		return shared.ErrFutureTimestamp
	case "gt", "gte", "lt", "lte", "min", "max":
		return shared.ErrValueOutOfRange
	default:
		return nil
	}
}
