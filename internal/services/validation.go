package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"hospitality_backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DrinkTypes lists the accepted drink categories.
var DrinkTypes = []string{
	"whisky", "vodka", "gin", "rum", "brandy", "tequila",
	"wine", "beer", "liqueur", "cognac", "champagne", "cider",
}

// DrinkVolumes lists the accepted bottle sizes.
var DrinkVolumes = []string{"250ml", "330ml", "350ml", "500ml", "750ml", "1L"}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json names so messages match the request payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	mustRegister(v, "drinktype", oneOfFunc(DrinkTypes))
	mustRegister(v, "drinkvolume", oneOfFunc(DrinkVolumes))
	mustRegister(v, "paymentmethod", oneOfFunc(models.PaymentMethods))
	mustRegister(v, "department", oneOfFunc(models.Roles))
	// Money columns are NUMERIC(12,2) and markup NUMERIC(6,4).
	mustRegister(v, "money", scaleFunc(2, maxMoney))
	mustRegister(v, "markup", scaleFunc(4, maxMarkup))
	return v
}

var (
	maxMoney  = decimal.New(1, 10)
	maxMarkup = decimal.NewFromInt(100)
)

// scaleFunc accepts decimals below limit with at most places decimal places.
// The custom type func has already turned the decimal into a float64.
func scaleFunc(places int32, limit decimal.Decimal) validator.Func {
	return func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.Float64 {
			return false
		}
		d := decimal.NewFromFloat(fl.Field().Float())
		return d.Abs().LessThan(limit) && d.Equal(d.Round(places))
	}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering %s validation: %v", tag, err))
	}
}

func oneOfFunc(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return contains(allowed, fl.Field().String())
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// validateStruct runs the struct tags and converts the first failure into a ValidationError.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return validationError("invalid request: %v", err)
	}
	return fieldErrorMessage(fieldErrs[0])
}

func fieldErrorMessage(fe validator.FieldError) error {
	field := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return validationError("%s is required", field)
	case "gt":
		if fe.Param() == "0" {
			return validationError("%s must be greater than zero", field)
		}
		return validationError("%s must be greater than %s", field, fe.Param())
	case "gte":
		if fe.Param() == "0" {
			return validationError("%s cannot be negative", field)
		}
		return validationError("%s must be at least %s", field, fe.Param())
	case "min":
		return validationError("%s must be at least %s characters", field, fe.Param())
	case "max":
		return validationError("%s can be at most %s characters", field, fe.Param())
	case "number":
		return validationError("%s can only contain digits", field)
	case "drinktype":
		return validationError("drink types can only be one of: %s", strings.Join(DrinkTypes, ", "))
	case "drinkvolume":
		return validationError("drink volume can only be %s", strings.Join(DrinkVolumes, ", "))
	case "paymentmethod":
		return validationError("payment can only be made via %s", strings.Join(models.PaymentMethods, ", "))
	case "department":
		return validationError("department can only be %s", strings.Join(models.Roles, ", "))
	case "money":
		return validationError("%s must be below %s with at most 2 decimal places", field, maxMoney.String())
	case "markup":
		return validationError("%s must be below %s with at most 4 decimal places", field, maxMarkup.String())
	}
	return validationError("%s is invalid", field)
}
