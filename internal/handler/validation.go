package handler

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var academicYearPattern = regexp.MustCompile(`^\d{4}-\d{4}$`)

// RegisterValidations installs the gateway's custom binding rules on gin's
// validator engine. Call once at startup.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("academic_year", func(fl validator.FieldLevel) bool {
			return academicYearPattern.MatchString(fl.Field().String())
		})
	}
}
