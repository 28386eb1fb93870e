// Package validation provides input validation for catalog records and
// run configuration.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Decimal fields are checked
// through their exact string form, so tags such as dgte0 never round.
//
// # Struct Tag Validation
//
//	type Product struct {
//	    Name  string          `json:"name" validate:"required,max=64"`
//	    Price decimal.Decimal `json:"price" validate:"dgte0"`
//	}
//	err := validation.Validate(p)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("report.title", title).Positive("query.tax_multiplier", m)
//	err := v.Validate()
package validation
