package validation

import (
	stderrors "errors"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/kbukum/catalogq/errors"
)

// TagDecimalNonNegative is the struct tag that rejects negative decimal.Decimal values.
const TagDecimalNonNegative = "dgte0"

// fieldNameTags are consulted in order to name a field in messages, so
// errors use the key the user wrote in config.yml.
var fieldNameTags = []string{"yaml", "mapstructure", "json"}

var structValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	if err := v.RegisterValidation(TagDecimalNonNegative, decimalNonNegative); err != nil {
		panic(err)
	}
	return v
})

func fieldName(fld reflect.StructField) string {
	for _, tag := range fieldNameTags {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return toSnakeCase(fld.Name)
}

// decimalValue hands validator the exact string form of a decimal, so
// string tags like required see "0" rather than an opaque struct.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func decimalNonNegative(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && !d.IsNegative()
}

// Validate checks s against its `validate` struct tags, e.g.
// `validate:"required,max=64,dgte0"`. Failures come back as one
// INVALID_INPUT AppError listing every field under Details["fields"].
func Validate(s any) error {
	err := structValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Validation("validation failed").WithCause(err)
	}

	v := New()
	for _, e := range verrs {
		v.AddError(toSnakeCase(e.Field()), describe(e))
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + e.Param() + " characters"
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "oneof":
		return "must be one of: " + e.Param()
	case TagDecimalNonNegative:
		return "must not be negative"
	}
	return "is invalid"
}

// toSnakeCase turns a Go field name into its config key form.
func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
