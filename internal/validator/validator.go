// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"midas/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("region", validateRegion)
		_ = v.RegisterValidation("cost_category", validateCostCategory)
	}
}

func validateRegion(fl validator.FieldLevel) bool {
	_, ok := models.ParseRegion(fl.Field().String())
	return ok
}

func validateCostCategory(fl validator.FieldLevel) bool {
	switch models.CostCategory(fl.Field().String()) {
	case models.CostCategoryHealth, models.CostCategoryEducation, models.CostCategoryFood,
		models.CostCategoryHousing, models.CostCategoryInfrastructure,
		models.CostCategoryEnvironment, models.CostCategoryLuxury:
		return true
	}
	return false
}
