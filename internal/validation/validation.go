// Package validation binds and validates request data.
//
// Struct tags are enforced with go-playground/validator and failures are
// turned into field-level errors the client can act on.
package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/workout-api/internal/errs"
)

// Validatable is implemented by request payloads that validate themselves.
type Validatable interface {
	Validate() error
}

// Defaulter is implemented by payloads whose optional parameters have
// non-zero defaults. SetDefaults runs before binding, so bound values win.
type Defaulter interface {
	SetDefaults()
}

// CustomValidationError is a validation issue tags cannot express.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator.
//
// Field names are reported by their json, query or param tag, and decimals
// validate as float64 so numeric tags (gt, min, max) apply to them.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(fieldName)
		validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = validate.RegisterValidation("decimals", maxDecimals)
	})
	return validate
}

// Struct validates s against its tags.
func Struct(s any) error {
	return Validator().Struct(s)
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "query", "param"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}

func decimalValue(v reflect.Value) any {
	if d, ok := v.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// maxDecimals implements decimals=N: at most N fractional digits. Decimals
// arrive here as float64 (see decimalValue).
func maxDecimals(fl validator.FieldLevel) bool {
	places, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		return decimal.NewFromFloat(field.Float()).Exponent() >= -int32(places)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

// BindAndValidate binds request data into payload and validates it.
//
// Binding uses StrictBinder: path parameters always, query parameters for
// GET and DELETE, and a JSON body that may not carry unknown fields.
// Failures come back as a 400 *errs.HTTPError.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if d, ok := payload.(Defaulter); ok {
		d.SetDefaults()
	}

	if err := DefaultBinder.Bind(payload, c); err != nil {
		return bindError(err)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

func bindError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		message, ok := echoErr.Message.(string)
		if !ok {
			message = http.StatusText(echoErr.Code)
		}
		if echoErr.Code == http.StatusUnsupportedMediaType {
			code := "UNSUPPORTED_MEDIA_TYPE"
			e := errs.NewBadRequestError(message, false, &code, nil, nil)
			e.Status = http.StatusUnsupportedMediaType
			return e
		}
		return errs.NewBadRequestError(message, false, nil, nil, nil)
	}

	return errs.NewBadRequestError("Invalid request", false, nil, nil, nil)
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", []errs.FieldError{{Field: "", Error: err.Error()}}
	}

	for _, err := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: fieldPath(err),
			Error: message(err),
		})
	}

	return "Validation failed", fieldErrors
}

// fieldPath drops Go type names (the root struct and embedded structs) from
// the namespace: "UpdateAthleteRequest.AthletePatch.peso" becomes "peso".
func fieldPath(err validator.FieldError) string {
	var parts []string
	for _, part := range strings.Split(err.Namespace(), ".") {
		if part != "" && !unicode.IsUpper([]rune(part)[0]) {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return err.Field()
	}
	return strings.Join(parts, ".")
}

func message(err validator.FieldError) string {
	isString := err.Kind() == reflect.String

	switch err.Tag() {
	case "required":
		return "is required"

	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())

	case "max":
		if isString {
			return fmt.Sprintf("must not exceed %s characters", err.Param())
		}
		return fmt.Sprintf("must not exceed %s", err.Param())

	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())

	case "gte":
		return fmt.Sprintf("must be at least %s", err.Param())

	case "lt":
		return fmt.Sprintf("must be less than %s", err.Param())

	case "lte":
		return fmt.Sprintf("must not exceed %s", err.Param())

	case "decimals":
		return fmt.Sprintf("must have at most %s decimal places", err.Param())

	case "len":
		return fmt.Sprintf("must be exactly %s characters", err.Param())

	case "numeric":
		return "must contain only digits"

	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())

	case "email":
		return "must be a valid email address"

	case "uuid":
		return "must be a valid UUID"

	default:
		if err.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", err.Field(), err.Tag(), err.Param())
		}
		return fmt.Sprintf("%s: %s", err.Field(), err.Tag())
	}
}
