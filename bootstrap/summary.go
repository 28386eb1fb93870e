package bootstrap

import (
	"context"
	"time"

	"github.com/kbukum/catalogq/component"
	"github.com/kbukum/catalogq/logger"
)

// ComponentInfo is one row of the startup summary.
type ComponentInfo struct {
	Name    string
	Type    string
	Details string
	Status  component.HealthStatus
	Message string
}

// Summary tracks and logs the application bootstrap process.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	components      []ComponentInfo
}

// NewSummary creates a new bootstrap summary tracker.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
	}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// StartupDuration returns the recorded startup time.
func (s *Summary) StartupDuration() time.Duration {
	return s.startupDuration
}

// Components returns the rows collected by the last Collect.
func (s *Summary) Components() []ComponentInfo {
	return s.components
}

// Collect builds one row per registered component, in registration order,
// joining self-descriptions with live health.
func (s *Summary) Collect(ctx context.Context, registry *component.Registry) []ComponentInfo {
	s.components = s.components[:0]
	if registry == nil {
		return s.components
	}

	health := make(map[string]component.Health)
	for _, h := range registry.HealthAll(ctx) {
		health[h.Name] = h
	}

	for _, c := range registry.All() {
		info := ComponentInfo{Name: c.Name()}
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			if desc.Name != "" {
				info.Name = desc.Name
			}
			info.Type = desc.Type
			info.Details = desc.Details
		}
		if h, ok := health[c.Name()]; ok {
			info.Status = h.Status
			info.Message = h.Message
		}
		s.components = append(s.components, info)
	}
	return s.components
}

// DisplaySummary logs the startup line, one line per component, and a
// health verdict.
func (s *Summary) DisplaySummary(ctx context.Context, registry *component.Registry, log *logger.Logger) {
	log.Info("started", logger.Fields(
		"service", s.serviceName,
		"version", s.version,
		"startup_ms", s.startupDuration.Milliseconds(),
	))

	rows := s.Collect(ctx, registry)
	if len(rows) == 0 {
		log.Debug("no components registered")
		return
	}

	healthy := 0
	for _, c := range rows {
		fields := logger.Fields("type", c.Type, "status", string(c.Status))
		if c.Details != "" {
			fields["details"] = c.Details
		}
		if c.Message != "" {
			fields["health_message"] = c.Message
		}
		if c.Status == component.StatusHealthy {
			healthy++
			log.Debug("component "+c.Name, fields)
		} else {
			log.Warn("component "+c.Name, fields)
		}
	}

	verdict := logger.Fields("healthy", healthy, "total", len(rows))
	if healthy == len(rows) {
		log.Debug("all components healthy", verdict)
	} else {
		log.Warn("some components have issues", verdict)
	}
}
