package runner

import (
	"context"
	"io"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/kbukum/catalogq/catalog"
	"github.com/kbukum/catalogq/errors"
	"github.com/kbukum/catalogq/logger"
	"github.com/kbukum/catalogq/observability"
	"github.com/kbukum/catalogq/query"
	"github.com/kbukum/catalogq/report"
)

// ComponentName tags the runner's log lines.
const ComponentName = "runner"

// Operation names, in run order. They tag spans, metrics and log lines.
const (
	OpExpensive = "expensive"
	OpNames     = "names"
	OpSorted    = "sort"
	OpGrouped   = "group"
	OpTotals    = "aggregate"
	OpProjected = "project"
)

// Source supplies the products of a run.
type Source interface {
	Products(ctx context.Context) ([]catalog.Product, error)
}

// Runner executes the six query operations over one catalog snapshot and
// writes the report.
type Runner struct {
	source   Source
	out      io.Writer
	cfg      Config
	title    string
	service  string
	metrics  *observability.Metrics
	log      *logger.Logger
	newRunID func() string
}

// Option configures a Runner.
type Option func(*Runner)

// WithTitle sets the report banner title.
func WithTitle(title string) Option {
	return func(r *Runner) { r.title = title }
}

// WithMetrics records per-operation metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithLogger replaces the component logger.
func WithLogger(l *logger.Logger) Option {
	return func(r *Runner) { r.log = l }
}

// WithServiceName sets the service name recorded on spans and metrics.
func WithServiceName(name string) Option {
	return func(r *Runner) { r.service = name }
}

// WithRunID replaces the run id generator.
func WithRunID(fn func() string) Option {
	return func(r *Runner) { r.newRunID = fn }
}

// New creates a runner reading from source and writing to out.
func New(source Source, out io.Writer, cfg Config, opts ...Option) *Runner {
	r := &Runner{
		source:   source,
		out:      out,
		cfg:      cfg,
		title:    report.DefaultTitle,
		service:  "catalogq",
		log:      logger.Get(ComponentName),
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type step struct {
	name string
	run  func(ctx context.Context, products []catalog.Product, w *report.Writer) (int, error)
}

func (r *Runner) steps() []step {
	return []step{
		{OpExpensive, func(ctx context.Context, products []catalog.Product, w *report.Writer) (int, error) {
			res, err := query.ExpensiveProducts(ctx, products, r.cfg.ExpensiveThreshold)
			if err != nil {
				return 0, err
			}
			w.Expensive(res)
			return len(res), nil
		}},
		{OpNames, func(ctx context.Context, products []catalog.Product, w *report.Writer) (int, error) {
			res, err := query.ProductNames(ctx, products)
			if err != nil {
				return 0, err
			}
			w.Names(res)
			return len(res), nil
		}},
		{OpSorted, func(ctx context.Context, products []catalog.Product, w *report.Writer) (int, error) {
			res, err := query.SortedByPrice(ctx, products)
			if err != nil {
				return 0, err
			}
			w.Sorted(res)
			return len(res), nil
		}},
		{OpGrouped, func(ctx context.Context, products []catalog.Product, w *report.Writer) (int, error) {
			res, err := query.GroupedByCategory(ctx, products)
			if err != nil {
				return 0, err
			}
			w.Grouped(res)
			return len(res), nil
		}},
		{OpTotals, func(ctx context.Context, products []catalog.Product, w *report.Writer) (int, error) {
			res, err := query.PriceTotals(ctx, products)
			if err != nil {
				return 0, err
			}
			w.Totals(res)
			return res.Count, nil
		}},
		{OpProjected, func(ctx context.Context, products []catalog.Product, w *report.Writer) (int, error) {
			res, err := query.PricesWithTax(ctx, products, r.cfg.TaxMultiplier)
			if err != nil {
				return 0, err
			}
			w.Projected(res)
			return len(res), nil
		}},
	}
}

// Run executes the operations in order under one run span. It stops at the
// first failure: context errors map to CANCELED, write errors to OUTPUT_ERROR.
func (r *Runner) Run(ctx context.Context) (err error) {
	runID := r.newRunID()
	ctx = logger.ContextWithRunID(ctx, runID)
	ctx, span := observability.StartSpan(ctx, observability.SpanRun)
	span.SetAttributes(attribute.String(observability.AttrRunID, runID))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	log := r.log.WithContext(ctx)

	products, err := r.source.Products(ctx)
	if err != nil {
		return errors.Wrap(err)
	}
	span.SetAttributes(attribute.Int(observability.AttrItemCount, len(products)))
	log.Debug("Run started", logger.Fields(logger.FieldCount, len(products)))

	w := report.NewWriter(r.out, report.WithTitle(r.title))
	w.Banner()
	if w.Err() != nil {
		return errors.Output(w.Err())
	}

	for _, s := range r.steps() {
		if err := r.runStep(ctx, runID, s, products, w); err != nil {
			log.Debug("Operation failed", logger.MergeWithError(logger.Fields(logger.FieldOperation, s.name), err))
			return err
		}
	}

	w.Done()
	if w.Err() != nil {
		return errors.Output(w.Err())
	}

	log.Debug("Run complete", logger.Fields("lines", w.Lines()))
	return nil
}

func (r *Runner) runStep(ctx context.Context, runID string, s step, products []catalog.Product, w *report.Writer) error {
	oc := observability.NewOperationContext(r.service, s.name, runID, r.metrics)
	ctx, span := oc.StartSpanForOperation(ctx, observability.SpanQuery)

	n, err := s.run(ctx, products, w)
	if err == nil && w.Err() != nil {
		err = errors.Output(w.Err())
	}
	oc.EndOperation(ctx, span, n, err)
	if err != nil {
		return errors.Wrap(err).WithDetail("operation", s.name)
	}
	return nil
}
