package query

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kbukum/catalogq/catalog"
	"github.com/kbukum/catalogq/pipeline"
)

// Default parameters of the reference run.
var (
	DefaultExpensiveThreshold = decimal.NewFromInt(100)
	DefaultTaxMultiplier      = decimal.RequireFromString("1.1")
)

// Group is one category with its products in catalog order.
type Group = pipeline.Grouping[string, catalog.Product]

// PricedView is the reshaped record: the product name and its price with tax.
type PricedView struct {
	ProductName  string
	PriceWithTax decimal.Decimal
}

// ExpensiveProducts returns products priced strictly above threshold, in
// catalog order.
func ExpensiveProducts(ctx context.Context, products []catalog.Product, threshold decimal.Decimal) ([]catalog.Product, error) {
	p := pipeline.Filter(pipeline.FromSlice(products), func(p catalog.Product) bool {
		return p.Price.GreaterThan(threshold)
	})
	return pipeline.Collect(ctx, p)
}

// ProductNames returns every product name in catalog order.
func ProductNames(ctx context.Context, products []catalog.Product) ([]string, error) {
	p := pipeline.Map(pipeline.FromSlice(products), func(_ context.Context, p catalog.Product) (string, error) {
		return p.Name, nil
	})
	return pipeline.Collect(ctx, p)
}

// SortedByPrice returns the products ordered by ascending price. Products
// with equal prices keep their catalog order.
func SortedByPrice(ctx context.Context, products []catalog.Product) ([]catalog.Product, error) {
	p := pipeline.OrderByFunc(pipeline.FromSlice(products), func(a, b catalog.Product) int {
		return a.Price.Cmp(b.Price)
	})
	return pipeline.Collect(ctx, p)
}

// GroupedByCategory partitions products by category. Groups appear in the
// order their category first occurs; members keep catalog order.
func GroupedByCategory(ctx context.Context, products []catalog.Product) ([]Group, error) {
	p := pipeline.GroupBy(pipeline.FromSlice(products), func(p catalog.Product) string {
		return p.Category
	})
	return pipeline.Collect(ctx, p)
}

// PricesWithTax reshapes each product into a PricedView with price * multiplier.
func PricesWithTax(ctx context.Context, products []catalog.Product, multiplier decimal.Decimal) ([]PricedView, error) {
	p := pipeline.Map(pipeline.FromSlice(products), func(_ context.Context, p catalog.Product) (PricedView, error) {
		return PricedView{ProductName: p.Name, PriceWithTax: p.Price.Mul(multiplier)}, nil
	})
	return pipeline.Collect(ctx, p)
}
