// Command catalogq runs the catalog queries and prints the report to stdout.
// Logs go to stderr.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kbukum/catalogq/bootstrap"
	"github.com/kbukum/catalogq/catalog"
	"github.com/kbukum/catalogq/config"
	"github.com/kbukum/catalogq/errors"
	"github.com/kbukum/catalogq/logger"
	"github.com/kbukum/catalogq/observability"
	"github.com/kbukum/catalogq/runner"
	"github.com/kbukum/catalogq/version"
)

func main() {
	os.Exit(run(context.Background(), os.Stdout))
}

// run wires the app and returns the process exit code.
func run(ctx context.Context, stdout io.Writer, opts ...config.LoaderOption) int {
	var cfg AppConfig
	if err := loadConfig(&cfg, opts...); err != nil {
		return fail(errors.Config(err))
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			return fail(appErr)
		}
		return fail(errors.Config(err))
	}

	telemetry := observability.NewTelemetry(cfg.Observability, cfg.Name, cfg.Version, cfg.Environment)
	cat := catalog.NewFromConfig(cfg.Catalog)
	if err := app.RegisterComponent(telemetry); err != nil {
		return fail(errors.Internal(err))
	}
	if err := app.RegisterComponent(cat); err != nil {
		return fail(errors.Internal(err))
	}

	app.OnStart(func(context.Context) error {
		app.Logger.Info("version", version.GetVersionInfo().Fields())
		return nil
	})

	var r *runner.Runner
	app.OnConfigure(func(_ context.Context, a *bootstrap.App[*AppConfig]) error {
		r = runner.New(cat, stdout, a.Cfg.Query,
			runner.WithTitle(a.Cfg.Report.Title),
			runner.WithMetrics(telemetry.Metrics()),
			runner.WithServiceName(a.Cfg.Name),
		)
		return nil
	})

	if err := app.RunTask(ctx, func(ctx context.Context) error {
		return r.Run(ctx)
	}); err != nil {
		return fail(errors.Wrap(err))
	}
	return 0
}

// fail logs err with its code and returns its exit code.
func fail(err *errors.AppError) int {
	logger.Error(fmt.Sprintf("%s failed", serviceName), err.ToReport().Fields())
	return err.ExitCode()
}
