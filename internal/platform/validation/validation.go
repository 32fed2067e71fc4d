// Package validation configures go-playground/validator for request schemas.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// URLsPattern matches a "|"-separated list of paths, each starting with "/".
var URLsPattern = regexp.MustCompile(`^\/[^|]+\|?(\/[^|]+\|?)*$`)

// New returns a validator that reports fields by their query/json name and
// knows the "urls" rule.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"query", "params", "json"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})

	if err := v.RegisterValidation("urls", func(fl validator.FieldLevel) bool {
		return URLsPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	// "number" replaces the built-in digits-only rule: any finite decimal,
	// including exponent and leading-dot forms such as "1e12" and ".5".
	if err := v.RegisterValidation("number", isFiniteNumber); err != nil {
		panic(err)
	}

	return v
}

func isFiniteNumber(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.String:
		n, err := strconv.ParseFloat(f.String(), 64)
		return err == nil && !math.IsNaN(n) && !math.IsInf(n, 0)
	case reflect.Float32, reflect.Float64:
		return !math.IsNaN(f.Float()) && !math.IsInf(f.Float(), 0)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// FieldErrors flattens validation errors into field -> message.
// ok is false when err did not come from the validator.
func FieldErrors(err error) (fields map[string]string, ok bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	fields = make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return fields, true
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid":
		return "must be a valid UUID"
	case "numeric", "number":
		return "must be a number"
	case "urls":
		return "Invalid URLs format"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
