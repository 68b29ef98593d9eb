// Package validation wires go-playground/validator for the API request types.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/chris/money-movements/pkg/api"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator validates request DTOs and reports errors keyed by JSON field name.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator with the custom types and tags of the API registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(api.FlexibleDate); ok {
			return d.Time
		}
		return nil
	}, api.FlexibleDate{})
	_ = v.RegisterValidation("calendar_date", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && !t.IsZero()
	})

	return &Validator{validate: v}
}

// Struct validates s. It returns nil, or a map from field name to message.
func (v *Validator) Struct(s interface{}) map[string]string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	return Errors(err)
}

// Errors converts a validator error into field messages.
func Errors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "calendar_date":
		return "must be a valid date"
	case "email":
		return "must be a valid email address"
	}
	return fmt.Sprintf("failed the %q check", fe.Tag())
}
