package handlers

import (
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RegisterValidators installs the decimal binding tags used by request DTOs:
// dgt0 (> 0), dgte0 (>= 0) and dpct (0..100).
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return registerDecimalValidators(v)
}

func registerDecimalValidators(v *validator.Validate) error {
	// Decimals are validated through their string form so field tags apply
	// to the value rather than to the struct internals.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	checks := map[string]func(decimal.Decimal) bool{
		"dgt0":  func(d decimal.Decimal) bool { return d.IsPositive() },
		"dgte0": func(d decimal.Decimal) bool { return !d.IsNegative() },
		"dpct":  func(d decimal.Decimal) bool { return !d.IsNegative() && d.LessThanOrEqual(hundred) },
	}
	for tag, check := range checks {
		check := check
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			d, err := decimal.NewFromString(fl.Field().String())
			if err != nil {
				return false
			}
			return check(d)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
