// Package bootstrap orchestrates the application lifecycle: typed
// configuration, component registration, startup/shutdown hooks and a
// startup summary written to the log.
//
// # Quick Start
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    return err
//	}
//	_ = app.RegisterComponent(catalogComponent)
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return r.Run(ctx)
//	})
//
// RunTask starts components in registration order, runs the task with a
// context canceled on SIGINT/SIGTERM, and stops components in reverse order.
package bootstrap
