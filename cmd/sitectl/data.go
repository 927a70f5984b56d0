package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kbukum/sitekit/component"
	apperrors "github.com/kbukum/sitekit/errors"
	"github.com/kbukum/sitekit/fetch"
	"github.com/kbukum/sitekit/provider"
	"github.com/kbukum/sitekit/site"
)

// collectionOutput is the JSON shape of a provider snapshot.
type collectionOutput[T any] struct {
	Items   []T                  `json:"items"`
	State   string               `json:"state"`
	Message string               `json:"message"`
	Error   *apperrors.ErrorBody `json:"error,omitempty"`
}

func toOutput[T any](snap provider.Snapshot[T]) collectionOutput[T] {
	out := collectionOutput[T]{
		Items:   snap.Items,
		State:   snap.State.String(),
		Message: snap.Status.Message,
	}
	if snap.Status.Err != nil {
		body := fetch.ToAppError(snap.Status.Err).ToResponse().Error
		out.Error = &body
	}
	return out
}

func faqCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "faq",
		Short: "List FAQ entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			if err := app.RegisterComponent(app.FAQ); err != nil {
				return err
			}
			return app.RunTask(cmd.Context(), func(ctx context.Context) error {
				return printCollection(cmd.OutOrStdout(), site.UseFAQ(app.Tree).Snapshot())
			})
		},
	}
}

func testimonialsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "testimonials",
		Short: "List testimonials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			if err := app.RegisterComponent(app.Testimonials); err != nil {
				return err
			}
			return app.RunTask(cmd.Context(), func(ctx context.Context) error {
				return printCollection(cmd.OutOrStdout(), site.UseTestimonials(app.Tree).Snapshot())
			})
		},
	}
}

// loadCmd mounts both providers in sibling subtrees at the same time.
func loadCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Load FAQs and testimonials concurrently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			return app.RunTask(cmd.Context(), func(ctx context.Context) error {
				faqTree, testimonialsTree := app.Tree.Child(), app.Tree.Child()
				if err := faqTree.Add(app.FAQ); err != nil {
					return err
				}
				if err := testimonialsTree.Add(app.Testimonials); err != nil {
					return err
				}
				defer func() {
					_ = faqTree.Unmount(context.WithoutCancel(ctx))
					_ = testimonialsTree.Unmount(context.WithoutCancel(ctx))
				}()

				g, gctx := errgroup.WithContext(ctx)
				for _, tree := range []*component.Tree{faqTree, testimonialsTree} {
					g.Go(func() error { return tree.Mount(gctx) })
				}
				if err := g.Wait(); err != nil {
					return err
				}

				faq := site.UseFAQ(faqTree).Snapshot()
				testimonials := site.UseTestimonials(testimonialsTree).Snapshot()
				out := struct {
					FAQ          collectionOutput[site.FAQ]         `json:"faq"`
					Testimonials collectionOutput[site.Testimonial] `json:"testimonials"`
				}{toOutput(faq), toOutput(testimonials)}
				if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
					return err
				}

				if err := firstErr(faq.Status.Err, testimonials.Status.Err); err != nil {
					return &reportedError{err: err}
				}
				return nil
			})
		},
	}
}

// printCollection writes the snapshot and turns a failed load into a
// reported error.
func printCollection[T any](w io.Writer, snap provider.Snapshot[T]) error {
	if err := writeJSON(w, toOutput(snap)); err != nil {
		return err
	}
	if snap.Status.Err != nil {
		return &reportedError{err: snap.Status.Err}
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
