package utils

import (
	"main/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New()
	RegisterCustomValidators(Validate)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterCustomValidators(v)
	}
}

func RegisterCustomValidators(v *validator.Validate) {
	v.RegisterValidation("appstatus", ValidateStatusRule)
	v.RegisterValidation("apppriority", ValidatePriorityRule)
	v.RegisterValidation("intake", ValidateIntakeRule)
	v.RegisterValidation("notecategory", ValidateCategoryRule)
}

// Empty values pass; `required` is a separate rule.

func ValidateStatusRule(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || model.ApplicationStatus(s).Valid()
}

func ValidatePriorityRule(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, ok := model.CanonicalPriority(s)
	return ok
}

func ValidateIntakeRule(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || model.IntakePeriod(s).Valid()
}

func ValidateCategoryRule(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, ok := model.NoteCategoryStyles[model.NoteCategory(s)]
	return ok
}
