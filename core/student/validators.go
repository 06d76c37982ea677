package student

import (
	"github.com/go-playground/validator/v10"

	"github.com/tolberthub/admissions/core"
)

var (
	subStatusTag  = "substatus"
	subStatusText = "invalid submission status"
)

func init() {
	_ = core.Validate.RegisterValidation(subStatusTag, subStatusValidation)
	core.RegisterCustomTranslation(subStatusTag, subStatusText)
}

// subStatusValidation only allows the enumerated submission statuses.
func subStatusValidation(fl validator.FieldLevel) bool {
	return Status(fl.Field().String()).Valid()
}

// translate converts raw validator errors into a core.ValidationError so
// callers never see validator internals.
func translate(err error) error {
	if vErrs, ok := err.(validator.ValidationErrors); ok {
		return core.TranslateValidationErrors(vErrs)
	}
	return err
}
