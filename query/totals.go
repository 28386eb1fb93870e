package query

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kbukum/catalogq/catalog"
	"github.com/kbukum/catalogq/pipeline"
)

// averagePrecision is the number of decimal places kept when dividing the
// sum by the count.
const averagePrecision = 16

// Totals is the aggregate over a product list. Average is only meaningful
// when HasAverage is true; an empty list has a zero Sum and no average.
type Totals struct {
	Count      int
	Sum        decimal.Decimal
	Average    decimal.Decimal
	HasAverage bool
}

// PriceTotals sums all prices exactly and derives the average.
func PriceTotals(ctx context.Context, products []catalog.Product) (Totals, error) {
	sum := pipeline.Reduce(pipeline.FromSlice(products), Totals{Sum: decimal.Zero}, func(acc Totals, p catalog.Product) Totals {
		acc.Count++
		acc.Sum = acc.Sum.Add(p.Price)
		return acc
	})
	t, _, err := pipeline.First(ctx, sum)
	if err != nil {
		return Totals{}, err
	}
	if t.Count > 0 {
		t.Average = t.Sum.DivRound(decimal.NewFromInt(int64(t.Count)), averagePrecision)
		t.HasAverage = true
	}
	return t, nil
}
