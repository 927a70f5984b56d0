// Command sitectl drives the site API client, the data providers and the
// theme store from the command line. Output is JSON on stdout.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbukum/sitekit/bootstrap"
	"github.com/kbukum/sitekit/config"
	apperrors "github.com/kbukum/sitekit/errors"
	"github.com/kbukum/sitekit/fetch"
	"github.com/kbukum/sitekit/site"
)

const appName = "sitectl"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			_ = writeJSON(stdout, toAppError(err).ToResponse())
		}
		return 1
	}
	return 0
}

type rootOptions struct {
	configFile      string
	envFile         string
	baseURL         string
	simulateLoading bool
	logLevel        string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Query the site API and manage the persisted theme",
		Long: `sitectl talks to the site API through the same fetch wrapper and
providers the site uses: it lists FAQs and testimonials, submits the contact
and newsletter forms, flips the persisted light/dark theme and can serve a
local fake of the API for demos.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default: search standard locations)")
	flags.StringVar(&opts.envFile, "env-file", "", ".env file (default: search standard locations)")
	flags.StringVar(&opts.baseURL, "base-url", "", "site API base URL")
	flags.BoolVar(&opts.simulateLoading, "simulate-loading", false, "delay every request by api.loading_time")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (trace, debug, info, warn, error, disabled)")

	rootCmd.AddCommand(
		faqCmd(opts),
		testimonialsCmd(opts),
		loadCmd(opts),
		contactCmd(opts),
		subscribeCmd(opts),
		themeCmd(opts),
		serveMockCmd(opts),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig resolves configuration and applies flag overrides.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*site.Config, error) {
	var loaderOpts []config.LoaderOption
	if o.configFile != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(o.configFile))
	}
	if o.envFile != "" {
		loaderOpts = append(loaderOpts, config.WithEnvFile(o.envFile))
	}
	cfg, err := site.LoadConfig(appName, loaderOpts...)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.API.BaseURL = o.baseURL
	}
	if flags.Changed("simulate-loading") {
		cfg.API.SimulateLoading = o.simulateLoading
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	return cfg, nil
}

// newApp loads configuration and builds the application.
func (o *rootOptions) newApp(cmd *cobra.Command, opts ...bootstrap.Option) (*bootstrap.App, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return bootstrap.NewApp(cmd.Context(), cfg, opts...)
}

// reportedError marks a failure whose JSON response was already written.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// toAppError maps any failure onto the shared error model. Errors without a
// code keep their text in the details.
func toAppError(err error) *apperrors.AppError {
	appErr := fetch.ToAppError(err)
	if appErr.Code == apperrors.ErrCodeInternal && len(appErr.Details) == 0 {
		appErr = appErr.WithDetail("cause", err.Error())
	}
	return appErr
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
