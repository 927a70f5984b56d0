package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/sitekit/theme"
)

type themeOutput struct {
	Theme  string `json:"theme"`
	IsDark bool   `json:"isDark"`
	Logo   string `json:"logo"`
}

// Logo assets the site swaps with the theme.
const (
	logoLight = "/images/logo.svg"
	logoDark  = "/images/logo-dark.svg"
)

func themeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the persisted theme",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the current theme",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withTheme(cmd, opts, func(ctx context.Context, s *theme.Store) error {
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "Switch between light and dark",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withTheme(cmd, opts, func(ctx context.Context, s *theme.Store) error {
					_, err := s.Toggle(ctx)
					return err
				})
			},
		},
		&cobra.Command{
			Use:       "set {light|dark}",
			Short:     "Select a theme explicitly",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{theme.Light.String(), theme.Dark.String()},
			RunE: func(cmd *cobra.Command, args []string) error {
				return withTheme(cmd, opts, func(ctx context.Context, s *theme.Store) error {
					return s.Set(ctx, theme.Theme(args[0]))
				})
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Forget the stored theme and use the default",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withTheme(cmd, opts, func(ctx context.Context, s *theme.Store) error {
					return s.Reset(ctx)
				})
			},
		},
	)
	return cmd
}

// withTheme mounts the theme store, applies fn and prints the resulting theme.
func withTheme(cmd *cobra.Command, opts *rootOptions, fn func(context.Context, *theme.Store) error) error {
	app, err := opts.newApp(cmd)
	if err != nil {
		return err
	}
	if err := app.RegisterComponent(app.Theme); err != nil {
		return err
	}
	return app.RunTask(cmd.Context(), func(ctx context.Context) error {
		store := theme.Use(app.Tree)
		if err := fn(ctx, store); err != nil {
			return err
		}
		current, err := store.Current()
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), themeOutput{
			Theme:  current.String(),
			IsDark: store.IsDark(),
			Logo:   store.Pick(logoLight, logoDark),
		})
	})
}
