package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/sitekit/mockapi"
)

func serveMockCmd(opts *rootOptions) *cobra.Command {
	var cfg mockapi.Config

	cmd := &cobra.Command{
		Use:   "serve-mock",
		Short: "Serve a local fake of the site API",
		Long: `serve-mock answers the FAQ, testimonials and form endpoints with fixture
data until interrupted. Point other commands at it with --base-url.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newApp(cmd)
			if err != nil {
				return err
			}

			server := mockapi.New(
				mockapi.WithConfig(cfg),
				mockapi.WithLogger(app.Logger.WithComponent("mockapi")),
			)
			if err := app.RegisterComponent(server); err != nil {
				return err
			}
			app.OnStart(func(context.Context) error {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"url": server.URL()})
			})
			return app.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&cfg.Host, "host", "127.0.0.1", "listen host")
	cmd.Flags().IntVar(&cfg.Port, "port", mockapi.DefaultPort, "listen port (0 picks a free port)")
	return cmd
}
