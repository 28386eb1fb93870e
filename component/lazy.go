package component

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/catalogq/logger"
)

// Lazy provides thread-safe once-only initialization for components whose
// setup runs on first use or on Start, whichever comes first. A failed
// initialization is retried on the next call.
type Lazy struct {
	name        string
	mu          sync.RWMutex
	initialized bool
	lastError   error
	initializer func(ctx context.Context) error
	healthCheck func(ctx context.Context) error
	closer      func() error
}

// NewLazy creates a lazy component with the given initializer.
func NewLazy(name string, initializer func(context.Context) error) *Lazy {
	return &Lazy{
		name:        name,
		initializer: initializer,
	}
}

// Name returns the component name.
func (b *Lazy) Name() string {
	return b.name
}

// Initialize runs the initializer once, using double-check locking.
func (b *Lazy) Initialize(ctx context.Context) error {
	b.mu.RLock()
	if b.initialized {
		b.mu.RUnlock()
		return nil
	}
	b.mu.RUnlock()

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if b.initializer == nil {
		return fmt.Errorf("no initializer for component: %s", b.name)
	}

	if err := b.initializer(ctx); err != nil {
		b.lastError = err
		return fmt.Errorf("failed to initialize %s: %w", b.name, err)
	}

	b.initialized = true
	b.lastError = nil
	logger.Debug("Lazy component initialized", logger.Fields(logger.FieldComponent, b.name))
	return nil
}

// IsInitialized returns whether the component has been successfully initialized.
func (b *Lazy) IsInitialized() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.initialized
}

// LastError returns the error from the most recent failed initialization.
func (b *Lazy) LastError() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastError
}

// HealthCheck verifies the component is initialized and optionally runs a custom check.
func (b *Lazy) HealthCheck(ctx context.Context) error {
	if !b.IsInitialized() {
		if err := b.LastError(); err != nil {
			return err
		}
		return fmt.Errorf("component %s not initialized", b.name)
	}
	if b.healthCheck != nil {
		return b.healthCheck(ctx)
	}
	return nil
}

// Health reports HealthCheck as a Health value.
func (b *Lazy) Health(ctx context.Context) Health {
	if err := b.HealthCheck(ctx); err != nil {
		return Health{Name: b.name, Status: StatusUnhealthy, Message: err.Error()}
	}
	return Health{Name: b.name, Status: StatusHealthy}
}

// Close shuts down the component and marks it as uninitialized.
func (b *Lazy) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	if b.closer != nil && b.initialized {
		err = b.closer()
	}
	b.initialized = false
	return err
}

// WithHealthCheck sets a custom health check function.
func (b *Lazy) WithHealthCheck(fn func(context.Context) error) *Lazy {
	b.healthCheck = fn
	return b
}

// WithCloser sets a custom close function.
func (b *Lazy) WithCloser(fn func() error) *Lazy {
	b.closer = fn
	return b
}
