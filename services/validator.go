package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/crpix-studio-backend/errs"
	"github.com/rpupo63/crpix-studio-backend/media"
	"github.com/rpupo63/crpix-studio-backend/models"
)

// Validator checks admin drafts before anything is sent to storage or
// the database.
type Validator struct {
	validator *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// registering a fresh tag on a new validator cannot fail
	_ = v.RegisterValidation("videolink", validateVideoLink)
	v.RegisterAlias("maximages", fmt.Sprintf("max=%d", models.MaxProjectImages))
	return &Validator{validator: v}
}

// Validate returns nil or an *errs.ApiErr for the first failing field.
// requiredHint is shown when a required field is missing.
func (v *Validator) Validate(i any, requiredHint string) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errs.NewInternalErrorWithCause("validation failed", err)
	}

	// report missing fields before malformed ones
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" || fe.Tag() == "min" {
			return errs.NewMissingRequiredFieldError(fe.Field()).WithHint(requiredHint)
		}
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "videolink":
		return errs.NewInvalidFieldError(fe.Field(), "not a YouTube or Instagram link").
			WithHint("Please provide a valid YouTube or Instagram link.")
	case "maximages":
		return errs.NewInvalidFieldError(fe.Field(), fmt.Sprintf("at most %d allowed", models.MaxProjectImages)).
			WithHint(fmt.Sprintf("Maximum %d images allowed", models.MaxProjectImages))
	default:
		return errs.NewInvalidFieldError(fe.Field(), "failed "+fe.Tag()+" check")
	}
}

func validateVideoLink(fl validator.FieldLevel) bool {
	return media.ParseLink(fl.Field().String()).Supported()
}
