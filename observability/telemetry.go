package observability

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/catalogq/component"
	"github.com/kbukum/catalogq/logger"
)

// ComponentName is the registry name of the telemetry component.
const ComponentName = "telemetry"

// Config toggles tracing and metrics for a run.
type Config struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// ApplyDefaults samples every span unless a rate is set.
func (c *Config) ApplyDefaults() {
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
}

// Validate checks the sample rate range.
func (c *Config) Validate() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("observability.sample_rate must be between 0 and 1 (got: %v)", c.SampleRate)
	}
	return nil
}

// Telemetry owns the tracer and meter providers of a run. When disabled,
// it hands out no-op instruments so callers never branch on it.
type Telemetry struct {
	cfg         Config
	service     string
	version     string
	environment string
	exporter    sdktrace.SpanExporter
	reader      *sdkmetric.ManualReader
	tp          *sdktrace.TracerProvider
	mp          *sdkmetric.MeterProvider
	metrics     *Metrics
	log         *logger.Logger
	mu          sync.RWMutex
	started     bool
}

// TelemetryOption configures a Telemetry.
type TelemetryOption func(*Telemetry)

// WithSpanExporter replaces the log span exporter.
func WithSpanExporter(exp sdktrace.SpanExporter) TelemetryOption {
	return func(t *Telemetry) { t.exporter = exp }
}

// WithManualReader replaces the metric reader collected on Stop.
func WithManualReader(r *sdkmetric.ManualReader) TelemetryOption {
	return func(t *Telemetry) { t.reader = r }
}

// NewTelemetry creates the telemetry component. Providers are built on Start.
func NewTelemetry(cfg Config, service, version, environment string, opts ...TelemetryOption) *Telemetry {
	cfg.ApplyDefaults()
	t := &Telemetry{
		cfg:         cfg,
		service:     service,
		version:     version,
		environment: environment,
		log:         logger.Get(ComponentName),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name implements component.Component.
func (t *Telemetry) Name() string { return ComponentName }

// Start implements component.Component.
func (t *Telemetry) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.cfg.Enabled {
		m, err := NewMetrics(noop.NewMeterProvider().Meter(defaultTracerName))
		if err != nil {
			return err
		}
		t.metrics = m
		t.started = true
		return nil
	}

	tp, err := InitTracer(ctx, TracerConfig{
		ServiceName:    t.service,
		ServiceVersion: t.version,
		Environment:    t.environment,
		SampleRate:     t.cfg.SampleRate,
	}, t.exporter)
	if err != nil {
		return err
	}

	if t.reader == nil {
		t.reader = sdkmetric.NewManualReader()
	}
	mp, err := InitMeter(ctx, &MeterConfig{
		ServiceName:    t.service,
		ServiceVersion: t.version,
		Environment:    t.environment,
	}, t.reader)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return err
	}

	m, err := NewMetrics(mp.Meter(defaultTracerName))
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return err
	}

	t.tp, t.mp, t.metrics = tp, mp, m
	t.started = true
	return nil
}

// Stop implements component.Component. Collected metrics are logged before
// the providers shut down.
func (t *Telemetry) Stop(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return nil
	}
	t.started = false
	if !t.cfg.Enabled {
		return nil
	}

	var errs []error
	if err := LogMetrics(ctx, t.reader, t.log); err != nil {
		errs = append(errs, err)
	}
	if err := t.tp.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
	}
	if err := t.mp.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
	}
	return errors.Join(errs...)
}

// Health implements component.Component.
func (t *Telemetry) Health(_ context.Context) component.Health {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.started {
		return component.Health{Name: ComponentName, Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: ComponentName, Status: component.StatusHealthy}
}

// Describe implements component.Describable.
func (t *Telemetry) Describe() component.Description {
	details := "disabled"
	if t.cfg.Enabled {
		details = fmt.Sprintf("traces=log sample_rate=%v metrics=manual", t.cfg.SampleRate)
	}
	return component.Description{Name: "Telemetry", Type: "telemetry", Details: details}
}

// Metrics returns the run's instruments. Before Start it returns no-op ones.
func (t *Telemetry) Metrics() *Metrics {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.metrics == nil {
		m, _ := NewMetrics(noop.NewMeterProvider().Meter(defaultTracerName))
		return m
	}
	return t.metrics
}

// Tracer returns the run's tracer, or the global one when disabled.
func (t *Telemetry) Tracer() trace.Tracer {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.tp != nil {
		return t.tp.Tracer(defaultTracerName)
	}
	return otel.Tracer(defaultTracerName)
}
