package main

import (
	"context"

	"github.com/spf13/cobra"

	apperrors "github.com/kbukum/sitekit/errors"
	"github.com/kbukum/sitekit/fetch"
	"github.com/kbukum/sitekit/site"
)

type submissionOutput struct {
	Message string               `json:"message"`
	Data    site.SubmitResponse  `json:"data,omitempty"`
	Error   *apperrors.ErrorBody `json:"error,omitempty"`
}

func contactCmd(opts *rootOptions) *cobra.Command {
	var req site.ContactRequest

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Submit the contact form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			return app.RunTask(cmd.Context(), func(ctx context.Context) error {
				return printSubmission(cmd, app.Client.Contact(ctx, req))
			})
		},
	}

	cmd.Flags().StringVar(&req.FullName, "full-name", "", "your full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "your email address")
	cmd.Flags().StringVar(&req.Specialist, "specialist", "", "one of: starcraft, warhammer, billing, other")
	return cmd
}

func subscribeCmd(opts *rootOptions) *cobra.Command {
	var req site.SubscribeRequest

	cmd := &cobra.Command{
		Use:   "subscribe",
		Short: "Subscribe to the newsletter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			return app.RunTask(cmd.Context(), func(ctx context.Context) error {
				return printSubmission(cmd, app.Client.Subscribe(ctx, req))
			})
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "your email address")
	return cmd
}

func printSubmission(cmd *cobra.Command, sub site.Submission) error {
	out := submissionOutput{Message: sub.Notice, Data: sub.Data}
	if sub.Err != nil {
		body := fetch.ToAppError(sub.Err).ToResponse().Error
		out.Error = &body
	}
	if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
		return err
	}
	if sub.Err != nil {
		return &reportedError{err: sub.Err}
	}
	return nil
}
