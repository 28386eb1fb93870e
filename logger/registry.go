package logger

import (
	"sync"
)

// registry caches component loggers derived from the global logger.
// Init clears it so components pick up the new configuration.
var registry = &loggerRegistry{
	loggers: make(map[string]*Logger),
}

type loggerRegistry struct {
	mu      sync.Mutex
	loggers map[string]*Logger
}

// Register pins name to l until the next Init or Reset.
func Register(name string, l *Logger) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.loggers[name] = l
}

// Get returns the logger of a component: the one pinned with Register, or
// the global logger tagged with name, cached on first use.
func Get(name string) *Logger {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if l, ok := registry.loggers[name]; ok {
		return l
	}
	l := GetGlobalLogger().WithComponent(name)
	registry.loggers[name] = l
	return l
}

// Reset drops every cached and pinned logger.
func Reset() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.loggers = make(map[string]*Logger)
}
