package component

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/catalogq/logger"
)

// DefaultStopTimeout bounds each component's Stop call.
const DefaultStopTimeout = 10 * time.Second

// Registry owns the lifecycle of the process components. They start in
// registration order and stop in reverse; a component that never started is
// never stopped.
type Registry struct {
	mu          sync.RWMutex
	components  []Component
	started     int
	stopTimeout time.Duration
}

// registryLog is resolved per call so the registry follows logger.Init.
func registryLog(ctx context.Context) *logger.Logger {
	return logger.Get("registry").WithContext(ctx)
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		stopTimeout: DefaultStopTimeout,
	}
}

// SetStopTimeout changes the per-component Stop bound. Non-positive values
// are ignored.
func (r *Registry) SetStopTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	r.mu.Lock()
	r.stopTimeout = d
	r.mu.Unlock()
}

// Register appends c. Names must be unique; register dependencies first.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if r.indexOf(name) >= 0 {
		return fmt.Errorf("component %s already registered", name)
	}
	r.components = append(r.components, c)
	registryLog(context.Background()).Debug("component registered", logger.Fields(logger.FieldComponent, name))
	return nil
}

// StartAll starts every component not yet started. It stops at the first
// failure; components started before it stay started until StopAll.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	log := registryLog(ctx)
	for r.started < len(r.components) {
		c := r.components[r.started]
		if err := c.Start(ctx); err != nil {
			log.Error("component start failed", logger.MergeWithError(
				logger.Fields(logger.FieldComponent, c.Name()), err))
			return fmt.Errorf("failed to start %s: %w", c.Name(), err)
		}
		r.started++
		log.Debug("component started", logger.Fields(logger.FieldComponent, c.Name()))
	}
	return nil
}

// StopAll stops the started components in reverse order. Every component
// gets its Stop call even when an earlier one fails; the failures are joined.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	log := registryLog(ctx)
	var errs []error
	for ; r.started > 0; r.started-- {
		c := r.components[r.started-1]
		stopCtx, cancel := context.WithTimeout(ctx, r.stopTimeout)
		err := c.Stop(stopCtx)
		cancel()
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", c.Name(), err))
			log.Error("component stop failed", logger.MergeWithError(
				logger.Fields(logger.FieldComponent, c.Name()), err))
			continue
		}
		log.Debug("component stopped", logger.Fields(logger.FieldComponent, c.Name()))
	}
	return errors.Join(errs...)
}

// HealthAll reports every registered component in registration order.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Health, len(r.components))
	for i, c := range r.components {
		out[i] = c.Health(ctx)
	}
	return out
}

// Get returns the component registered under name, or nil.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(name); i >= 0 {
		return r.components[i]
	}
	return nil
}

// All returns the components in registration order.
func (r *Registry) All() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]Component(nil), r.components...)
}

func (r *Registry) indexOf(name string) int {
	for i, c := range r.components {
		if c.Name() == name {
			return i
		}
	}
	return -1
}
