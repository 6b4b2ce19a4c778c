package validator

import (
	"regexp"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
	"github.com/go-playground/validator/v10"
)

var (
	refreshTypeRegex = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)
)

func jobKindValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, known := model.ParseJobKind(val)
	return known
}

func refreshTypeValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return refreshTypeRegex.MatchString(val)
}
