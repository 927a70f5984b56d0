// Package bootstrap wires a sitekit application: logging, telemetry, the
// site API client, theme storage and a component tree, plus the lifecycle
// that mounts the tree, runs a task and unmounts everything again.
//
//	app, err := bootstrap.NewApp(ctx, cfg)
//	_ = app.RegisterComponent(app.FAQ)
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    items := site.UseFAQ(app.Tree).Items()
//	    ...
//	})
package bootstrap
