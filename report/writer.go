package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/kbukum/catalogq/catalog"
	"github.com/kbukum/catalogq/money"
	"github.com/kbukum/catalogq/query"
)

// DefaultTitle is the banner title of the reference run.
const DefaultTitle = "LINQ in C#.NET"

// NotANumber is printed for the average of an empty catalog.
const NotANumber = "NaN"

// Writer renders query results as plain text sections. The first write
// error is kept and every later call becomes a no-op; check Err once at the end.
type Writer struct {
	w     io.Writer
	title string
	lines int
	err   error
}

// Option configures a Writer.
type Option func(*Writer)

// WithTitle sets the banner title. Empty titles are ignored.
func WithTitle(title string) Option {
	return func(w *Writer) {
		if title != "" {
			w.title = title
		}
	}
}

// NewWriter creates a Writer over w.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	rw := &Writer{w: w, title: DefaultTitle}
	for _, opt := range opts {
		opt(rw)
	}
	return rw
}

// Err returns the first write error, if any.
func (w *Writer) Err() error { return w.err }

// Lines returns the number of lines written so far.
func (w *Writer) Lines() int { return w.lines }

// Title returns the banner title.
func (w *Writer) Title() string { return w.title }

func (w *Writer) println(s string) {
	if w.err != nil {
		return
	}
	if _, err := io.WriteString(w.w, s+"\n"); err != nil {
		w.err = err
		return
	}
	w.lines++
}

func (w *Writer) printf(format string, args ...any) {
	w.println(fmt.Sprintf(format, args...))
}

// Banner writes the title between two rules as wide as the title.
func (w *Writer) Banner() {
	rule := strings.Repeat("-", utf8.RuneCountInString(w.title))
	w.println(rule)
	w.println(w.title)
	w.println(rule)
	w.println("")
}

// Expensive writes the filtered product names.
func (w *Writer) Expensive(products []catalog.Product) {
	w.println("Expensive Products:")
	for _, p := range products {
		w.printf("- %s", p.Name)
	}
	w.println("")
}

// Names writes the projected product names.
func (w *Writer) Names(names []string) {
	w.println("Product Names:")
	for _, n := range names {
		w.printf("- %s", n)
	}
	w.println("")
}

// Sorted writes products with their prices, in the given order.
func (w *Writer) Sorted(products []catalog.Product) {
	w.println("Products sorted by price:")
	for _, p := range products {
		w.printf("%s: %s", p.Name, money.Dollars(p.Price))
	}
	w.println("")
}

// Grouped writes each category followed by its indented members.
func (w *Writer) Grouped(groups []query.Group) {
	w.println("Products grouped by category:")
	for _, g := range groups {
		w.printf("Category: %s", g.Key)
		for _, p := range g.Items {
			w.printf("   - %s (%s)", p.Name, money.Dollars(p.Price))
		}
	}
	w.println("")
}

// Totals writes the sum at its natural scale and the average with two
// decimals, or NaN when there is no average.
func (w *Writer) Totals(t query.Totals) {
	average := NotANumber
	if t.HasAverage {
		average = money.Fixed(t.Average, 2)
	}
	w.printf("Total cost of products: %s", money.Dollars(t.Sum))
	w.printf("Average price: $%s", average)
	w.println("")
}

// Projected writes each reshaped record.
func (w *Writer) Projected(views []query.PricedView) {
	w.println("Projected anonymous type results:")
	for _, v := range views {
		w.printf("%s - Price w/ Tax: %s", v.ProductName, money.Dollars(v.PriceWithTax))
	}
	w.println("")
}

// Done writes the closing line.
func (w *Writer) Done() {
	w.println("Done.")
}
