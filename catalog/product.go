package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kbukum/catalogq/errors"
	"github.com/kbukum/catalogq/validation"
)

// Product is one catalog record. Price is an exact decimal amount.
type Product struct {
	Name     string          `json:"name" yaml:"name" mapstructure:"name" validate:"required,max=64"`
	Category string          `json:"category" yaml:"category" mapstructure:"category" validate:"required,max=64"`
	Price    decimal.Decimal `json:"price" yaml:"price" mapstructure:"price" validate:"dgte0"`
}

// String implements fmt.Stringer for log fields.
func (p Product) String() string {
	return fmt.Sprintf("%s (%s, %s)", p.Name, p.Category, p.Price.String())
}

// Sample returns the built-in catalog in its canonical order.
func Sample() []Product {
	return []Product{
		{Name: "Laptop", Category: "Electronics", Price: decimal.NewFromInt(1200)},
		{Name: "Keyboard", Category: "Electronics", Price: decimal.NewFromInt(40)},
		{Name: "Apple", Category: "Food", Price: decimal.NewFromInt(3)},
		{Name: "Banana", Category: "Food", Price: decimal.NewFromInt(2)},
		{Name: "Monitor", Category: "Electronics", Price: decimal.NewFromInt(200)},
		{Name: "Bread", Category: "Food", Price: decimal.RequireFromString("1.5")},
	}
}

// Validate checks every product and reports all failures at once, with
// field names prefixed by the product's position ("products[2].price").
func Validate(products []Product) error {
	v := validation.New()
	for i, p := range products {
		err := validation.Validate(p)
		if err == nil {
			continue
		}
		prefix := fmt.Sprintf("products[%d]", i)
		appErr, ok := errors.AsAppError(err)
		if !ok {
			v.AddError(prefix, err.Error())
			continue
		}
		fields, _ := appErr.Details["fields"].([]validation.FieldError)
		for _, f := range fields {
			v.AddError(prefix+"."+f.Field, f.Message)
		}
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
