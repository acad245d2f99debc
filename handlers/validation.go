package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"food-marketplace-api/models"
	"food-marketplace-api/statemachine"
)

// RegisterValidators adds the custom binding rules to gin's validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		return statemachine.IsValid(models.OrderStatus(fl.Field().String()))
	})
}
