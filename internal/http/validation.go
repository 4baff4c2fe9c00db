package http

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"footfall-service/internal/model"
	"footfall-service/internal/timeslot"
)

// RegisterValidators adds the domain tags used in request bindings:
// period, event_group and role.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	validators := map[string]validator.Func{
		"period": func(fl validator.FieldLevel) bool {
			return timeslot.IsPeriod(fl.Field().String())
		},
		"event_group": func(fl validator.FieldLevel) bool {
			switch model.EventGroup(fl.Field().String()) {
			case model.GroupCustomer, model.GroupVehicle, model.GroupProduct:
				return true
			}
			return false
		},
		"role": func(fl validator.FieldLevel) bool {
			return model.Role(fl.Field().String()).Valid()
		},
	}
	for tag, fn := range validators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return nil
}
