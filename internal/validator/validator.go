// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"painel/internal/models"
)

// plateRegex accepts the old Brazilian plate (ABC-1234 / ABC1234) and the
// Mercosul plate (ABC1D23).
var plateRegex = regexp.MustCompile(`^[A-Z]{3}-?[0-9][A-Z0-9][0-9]{2}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterWith(v)
	}
}

// RegisterWith registers the custom validators on v.
func RegisterWith(v *validator.Validate) {
	_ = v.RegisterValidation("service_category", validateServiceCategory)
	_ = v.RegisterValidation("report_format", validateReportFormat)
	_ = v.RegisterValidation("license_plate", validateLicensePlate)
}

func validateServiceCategory(fl validator.FieldLevel) bool {
	return models.Category(fl.Field().String()).IsValid()
}

func validateReportFormat(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "json", "csv", "xlsx":
		return true
	}
	return false
}

func validateLicensePlate(fl validator.FieldLevel) bool {
	return plateRegex.MatchString(NormalizePlate(fl.Field().String()))
}

// NormalizePlate upper-cases a plate and strips surrounding and inner spaces.
func NormalizePlate(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}
