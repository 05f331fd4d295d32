package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	customError "github.com/segyhp/landsale-engine/pkg/errors"
)

// NewValidator returns a validator that understands decimal.Decimal fields
// through the decimal_gt and decimal_gte tags.
func NewValidator() *validator.Validate {
	v := validator.New()

	// Report JSON names instead of Go field names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("decimal_gt", decimalCompare(func(cmp int) bool { return cmp > 0 }))
	_ = v.RegisterValidation("decimal_gte", decimalCompare(func(cmp int) bool { return cmp >= 0 }))

	return v
}

func decimalCompare(accept func(cmp int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return accept(value.Cmp(bound))
	}
}

// decodeAndValidate reads a JSON body into dst and validates it
func decodeAndValidate(r *http.Request, v *validator.Validate, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return customError.WrapValidation(customError.NewValidationError("body", "invalid JSON payload"))
	}

	if err := v.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return customError.WrapValidation(customError.NewValidationError(
				fe.Field(), fmt.Sprintf("failed on %s", describeTag(fe)),
			))
		}
		return customError.WrapValidation(customError.NewValidationError("body", err.Error()))
	}

	return nil
}

func describeTag(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
