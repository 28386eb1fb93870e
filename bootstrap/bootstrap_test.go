package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/catalogq/component"
	"github.com/kbukum/catalogq/config"
	"github.com/kbukum/catalogq/logger"
)

// testConfig is a minimal config for testing that satisfies the Config interface.
type testConfig struct {
	config.ServiceConfig
}

// mockComponent implements component.Component for testing.
type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   component.Health
	started  bool
	stopped  bool
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	m.started = true
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	m.stopped = true
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) component.Health {
	return m.health
}

// describedComponent adds a startup description.
type describedComponent struct {
	mockComponent
	desc component.Description
}

func (d *describedComponent) Describe() component.Description { return d.desc }

func newTestConfig(name, version string) *testConfig {
	return &testConfig{
		ServiceConfig: config.ServiceConfig{
			Name:        name,
			Version:     version,
			Environment: "development",
		},
	}
}

func quietLogger() *logger.Logger {
	return logger.NewWithWriter(&logger.Config{Level: "disabled", Format: "json"}, "test", &bytes.Buffer{})
}

func newTestApp(t *testing.T, opts ...Option) *App[*testConfig] {
	t.Helper()
	app, err := NewApp(newTestConfig("test", "1.0"), append([]Option{WithLogger(quietLogger())}, opts...)...)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app
}

func healthy(name string) *mockComponent {
	return &mockComponent{
		name:   name,
		health: component.Health{Name: name, Status: component.StatusHealthy},
	}
}

func TestNewApp(t *testing.T) {
	cfg := newTestConfig("catalogq", "1.0.0")
	app, err := NewApp(cfg, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.Name != "catalogq" {
		t.Errorf("expected name 'catalogq', got %q", app.Name)
	}
	if app.Version != "1.0.0" {
		t.Errorf("expected version '1.0.0', got %q", app.Version)
	}
	if app.Components == nil {
		t.Error("expected non-nil components registry")
	}
	if app.Logger == nil {
		t.Error("expected non-nil logger")
	}
	if app.Summary == nil {
		t.Error("expected non-nil summary")
	}
	// Config is typed and defaults applied
	if app.Cfg.Logging.Output != "stderr" {
		t.Errorf("expected logging output default 'stderr', got %q", app.Cfg.Logging.Output)
	}
}

func TestNewAppInitializesLoggerFromConfig(t *testing.T) {
	defer logger.SetGlobalLogger(nil)
	cfg := newTestConfig("catalogq", "1.0.0")
	cfg.Logging.Output = "discard"
	app, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.Logger != logger.GetGlobalLogger() {
		t.Error("expected the global logger initialized from config")
	}
}

func TestNewAppValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  *testConfig
	}{
		{"missing name", &testConfig{ServiceConfig: config.ServiceConfig{Environment: "development"}}},
		{"bad environment", &testConfig{ServiceConfig: config.ServiceConfig{Name: "x", Environment: "qa"}}},
		{"bad log level", &testConfig{ServiceConfig: config.ServiceConfig{Name: "x", Logging: logger.Config{Level: "loud"}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewApp(tc.cfg, WithLogger(quietLogger())); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestNewAppWithOptions(t *testing.T) {
	app := newTestApp(t, WithGracefulTimeout(30*time.Second))
	if app.gracefulTimeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", app.gracefulTimeout)
	}
}

func TestDefaultGracefulTimeout(t *testing.T) {
	app := newTestApp(t)
	if app.gracefulTimeout != 15*time.Second {
		t.Errorf("expected default 15s, got %v", app.gracefulTimeout)
	}
	if len(app.signals) != 2 {
		t.Errorf("expected SIGINT and SIGTERM by default, got %v", app.signals)
	}
}

func TestRegisterComponent(t *testing.T) {
	app := newTestApp(t)
	if err := app.RegisterComponent(healthy("catalog")); err != nil {
		t.Fatalf("RegisterComponent failed: %v", err)
	}
	if app.Components.Get("catalog") == nil {
		t.Error("expected component to be registered")
	}
	if err := app.RegisterComponent(&mockComponent{name: "catalog"}); err == nil {
		t.Error("expected error for duplicate component registration")
	}
}

func TestMultipleHooks(t *testing.T) {
	app := newTestApp(t)
	order := []string{}
	app.OnStart(
		func(ctx context.Context) error { order = append(order, "first"); return nil },
		func(ctx context.Context) error { order = append(order, "second"); return nil },
	)

	if err := runHooks(context.Background(), app.onStart); err != nil {
		t.Fatal(err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("expected [first, second], got %v", order)
	}
}

func TestHookErrorStopsExecution(t *testing.T) {
	secondCalled := false
	hooks := []Hook{
		func(ctx context.Context) error { return fmt.Errorf("fail") },
		func(ctx context.Context) error { secondCalled = true; return nil },
	}
	err := runHooks(context.Background(), hooks)
	if err == nil || !strings.Contains(err.Error(), "hook 0 failed") {
		t.Errorf("expected indexed hook error, got %v", err)
	}
	if secondCalled {
		t.Error("expected second hook not to be called after first fails")
	}
}

func TestReadyCheck(t *testing.T) {
	tests := []struct {
		name    string
		comps   []*mockComponent
		wantErr bool
	}{
		{"empty", nil, false},
		{"all healthy", []*mockComponent{healthy("catalog"), healthy("telemetry")}, false},
		{"unhealthy", []*mockComponent{healthy("catalog"), {
			name:   "telemetry",
			health: component.Health{Name: "telemetry", Status: component.StatusUnhealthy, Message: "not started"},
		}}, true},
		{"degraded", []*mockComponent{{
			name:   "catalog",
			health: component.Health{Name: "catalog", Status: component.StatusDegraded},
		}}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t)
			for _, c := range tc.comps {
				_ = app.RegisterComponent(c)
			}
			err := app.ReadyCheck(context.Background())
			if (err != nil) != tc.wantErr {
				t.Errorf("ReadyCheck() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestRunTaskSuccess(t *testing.T) {
	app := newTestApp(t)
	executed := false
	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		executed = true
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}
	if !executed {
		t.Error("expected task to be executed")
	}
}

func TestRunTaskError(t *testing.T) {
	app := newTestApp(t)
	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		return fmt.Errorf("task error")
	})
	if err == nil || err.Error() != "task error" {
		t.Errorf("expected 'task error', got %v", err)
	}
}

func TestRunTaskCancellation(t *testing.T) {
	app := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())

	err := app.RunTask(ctx, func(taskCtx context.Context) error {
		cancel() // simulate signal
		<-taskCtx.Done()
		return taskCtx.Err()
	})
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunTaskLifecycleOrder(t *testing.T) {
	app := newTestApp(t)

	order := []string{}
	app.OnStart(func(ctx context.Context) error {
		order = append(order, "start")
		return nil
	})
	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error {
		if a.Cfg.Name != "test" {
			t.Errorf("expected typed config in configure callback, got %q", a.Cfg.Name)
		}
		order = append(order, "configure")
		return nil
	})
	app.OnReady(func(ctx context.Context) error {
		order = append(order, "ready")
		return nil
	})
	app.OnStop(func(ctx context.Context) error {
		order = append(order, "stop")
		return nil
	})

	if err := app.RunTask(context.Background(), func(ctx context.Context) error {
		order = append(order, "task")
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	expected := []string{"start", "configure", "ready", "task", "stop"}
	if strings.Join(order, ",") != strings.Join(expected, ",") {
		t.Errorf("expected %v, got %v", expected, order)
	}
}

func TestRunTaskWithComponents(t *testing.T) {
	app := newTestApp(t)
	comp := healthy("catalog")
	_ = app.RegisterComponent(comp)

	if err := app.RunTask(context.Background(), func(ctx context.Context) error { return nil }); err != nil {
		t.Fatal(err)
	}

	if !comp.started {
		t.Error("expected component to be started")
	}
	if !comp.stopped {
		t.Error("expected component to be stopped after task")
	}
}

func TestRunTaskStartupErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(app *App[*testConfig])
	}{
		{"start hook", func(app *App[*testConfig]) {
			app.OnStart(func(ctx context.Context) error { return fmt.Errorf("start hook failed") })
		}},
		{"configure", func(app *App[*testConfig]) {
			app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error { return fmt.Errorf("configure failed") })
		}},
		{"ready hook", func(app *App[*testConfig]) {
			app.OnReady(func(ctx context.Context) error { return fmt.Errorf("ready hook failed") })
		}},
		{"component start", func(app *App[*testConfig]) {
			_ = app.RegisterComponent(&mockComponent{name: "catalog", startErr: fmt.Errorf("start failed")})
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t)
			tc.setup(app)
			ran := false
			err := app.RunTask(context.Background(), func(ctx context.Context) error {
				ran = true
				return nil
			})
			if err == nil {
				t.Error("expected startup error")
			}
			if ran {
				t.Error("task must not run after a failed startup")
			}
		})
	}
}

func TestRunTaskStopsStartedComponentsOnStartupError(t *testing.T) {
	app := newTestApp(t)
	first := healthy("catalog")
	_ = app.RegisterComponent(first)
	_ = app.RegisterComponent(&mockComponent{name: "telemetry", startErr: fmt.Errorf("boom")})

	if err := app.RunTask(context.Background(), func(ctx context.Context) error { return nil }); err == nil {
		t.Fatal("expected error")
	}
	if !first.stopped {
		t.Error("expected the started component to be stopped")
	}
}

func TestRunTaskShutdownErrors(t *testing.T) {
	t.Run("stop hook error surfaces", func(t *testing.T) {
		app := newTestApp(t)
		app.OnStop(func(ctx context.Context) error { return fmt.Errorf("stop hook failed") })
		if err := app.RunTask(context.Background(), func(ctx context.Context) error { return nil }); err == nil {
			t.Error("expected error from failing stop hook")
		}
	})

	t.Run("task error wins over stop error", func(t *testing.T) {
		app := newTestApp(t)
		_ = app.RegisterComponent(&mockComponent{
			name:    "catalog",
			stopErr: fmt.Errorf("stop failed"),
			health:  component.Health{Name: "catalog", Status: component.StatusHealthy},
		})
		err := app.RunTask(context.Background(), func(ctx context.Context) error {
			return fmt.Errorf("task error")
		})
		if err == nil || err.Error() != "task error" {
			t.Errorf("expected task error, got %v", err)
		}
	})
}

func TestShutdownAfterRunTask(t *testing.T) {
	app := newTestApp(t)
	_ = app.RegisterComponent(healthy("catalog"))
	_ = app.RunTask(context.Background(), func(ctx context.Context) error { return nil })

	if err := app.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
}

func TestWaitForSignalContextCancellation(t *testing.T) {
	app := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	if sig := app.WaitForSignal(ctx); sig != nil {
		t.Errorf("expected nil signal for context cancellation, got %v", sig)
	}
}

func TestRunReturnsOnContextCancel(t *testing.T) {
	app := newTestApp(t)
	comp := healthy("catalog")
	_ = app.RegisterComponent(comp)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !comp.stopped {
		t.Error("expected component stopped")
	}
}

func TestWithLogger(t *testing.T) {
	custom := quietLogger()
	app, err := NewApp(newTestConfig("test", "1.0"), WithLogger(custom))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.Logger != custom {
		t.Error("expected custom logger to be set")
	}
}

func TestSummaryCollect(t *testing.T) {
	registry := component.NewRegistry()
	_ = registry.Register(&describedComponent{
		mockComponent: *healthy("catalog"),
		desc:          component.Description{Name: "Product Catalog", Type: "catalog", Details: "6 products, 2 categories"},
	})
	_ = registry.Register(&mockComponent{
		name:   "telemetry",
		health: component.Health{Name: "telemetry", Status: component.StatusUnhealthy, Message: "not started"},
	})

	s := NewSummary("catalogq", "dev")
	rows := s.Collect(context.Background(), registry)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Name != "Product Catalog" || rows[0].Type != "catalog" || rows[0].Status != component.StatusHealthy {
		t.Errorf("unexpected first row %+v", rows[0])
	}
	if rows[1].Name != "telemetry" || rows[1].Message != "not started" {
		t.Errorf("unexpected second row %+v", rows[1])
	}
	if len(s.Components()) != 2 {
		t.Error("expected rows kept on the summary")
	}

	if got := s.Collect(context.Background(), nil); len(got) != 0 {
		t.Errorf("expected no rows for nil registry, got %v", got)
	}
}

func TestSummaryDisplaySummary(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "catalogq", &buf)

	registry := component.NewRegistry()
	_ = registry.Register(&describedComponent{
		mockComponent: *healthy("catalog"),
		desc:          component.Description{Name: "Product Catalog", Type: "catalog", Details: "6 products, 2 categories"},
	})
	_ = registry.Register(&mockComponent{
		name:   "telemetry",
		health: component.Health{Name: "telemetry", Status: component.StatusDegraded},
	})

	s := NewSummary("catalogq", "dev")
	s.SetStartupDuration(1500 * time.Millisecond)
	if s.StartupDuration() != 1500*time.Millisecond {
		t.Errorf("unexpected startup duration %v", s.StartupDuration())
	}
	s.DisplaySummary(context.Background(), registry, log)

	out := buf.String()
	for _, want := range []string{
		`"message":"started"`,
		`"startup_ms":1500`,
		`"message":"component Product Catalog"`,
		`"details":"6 products, 2 categories"`,
		`"message":"some components have issues"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}
