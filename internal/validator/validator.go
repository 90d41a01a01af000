// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"finboard/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("tax_regime", validateTaxRegime)
		_ = v.RegisterValidation("not_blank", validateNotBlank)
	}
}

func validateTaxRegime(fl validator.FieldLevel) bool {
	switch models.TaxRegime(fl.Field().String()) {
	case models.TaxRegimeNew, models.TaxRegimeOld:
		return true
	}
	return false
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
