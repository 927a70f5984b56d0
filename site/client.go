package site

import (
	"context"
	"net/http"

	"github.com/kbukum/sitekit/fetch"
	"github.com/kbukum/sitekit/httpclient"
	"github.com/kbukum/sitekit/logger"
	"github.com/kbukum/sitekit/validation"
)

// Client talks to the site API through the fetch wrapper.
type Client struct {
	fetcher *fetch.Fetcher
	cfg     APIConfig
	log     *logger.Logger
}

// ClientOption configures a Client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	transport http.RoundTripper
	fetchOpts []fetch.FetcherOption
	log       *logger.Logger
}

// WithTransport replaces the HTTP transport.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(o *clientOptions) { o.transport = rt }
}

// WithFetcherOptions passes options through to the underlying Fetcher.
func WithFetcherOptions(opts ...fetch.FetcherOption) ClientOption {
	return func(o *clientOptions) { o.fetchOpts = append(o.fetchOpts, opts...) }
}

// WithLogger sets the client logger. It is also handed to the Fetcher.
func WithLogger(l *logger.Logger) ClientOption {
	return func(o *clientOptions) { o.log = l }
}

// NewClient creates a client for cfg. Defaults are applied to a copy of cfg.
func NewClient(cfg APIConfig, opts ...ClientOption) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := clientOptions{log: logger.Get("site")}
	for _, opt := range opts {
		opt(&o)
	}

	var adapterOpts []httpclient.Option
	if o.transport != nil {
		adapterOpts = append(adapterOpts, httpclient.WithTransport(o.transport))
	}
	httpCfg := httpclient.Config{
		Name:    "site-api",
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Headers: cfg.Headers,
	}
	switch {
	case cfg.Token != "":
		httpCfg.Auth = httpclient.BearerAuth(cfg.Token)
	case cfg.APIKey != "":
		httpCfg.Auth = httpclient.APIKeyAuth(cfg.APIKey, cfg.APIKeyHeader)
	}
	adapter, err := httpclient.New(httpCfg, adapterOpts...)
	if err != nil {
		return nil, err
	}

	fetchOpts := append([]fetch.FetcherOption{fetch.WithLogger(o.log.WithComponent("fetch"))}, o.fetchOpts...)
	return &Client{
		fetcher: fetch.NewFetcher(adapter, fetchOpts...),
		cfg:     cfg,
		log:     o.log,
	}, nil
}

// Fetcher returns the underlying fetcher.
func (c *Client) Fetcher() *fetch.Fetcher { return c.fetcher }

// Config returns the effective API configuration.
func (c *Client) Config() APIConfig { return c.cfg }

func (c *Client) loading() []fetch.Option {
	if !c.cfg.SimulateLoading {
		return nil
	}
	return []fetch.Option{fetch.WithSimulatedLoading(c.cfg.LoadingTime)}
}

// FAQs fetches the FAQ list.
func (c *Client) FAQs(ctx context.Context) fetch.Result[[]FAQ] {
	opts := append(c.loading(), fetch.WithValidator(ValidateFAQs))
	return fetch.Fetch[[]FAQ](ctx, c.fetcher, PathFAQ, opts...)
}

// Testimonials fetches the testimonial list.
func (c *Client) Testimonials(ctx context.Context) fetch.Result[[]Testimonial] {
	opts := append(c.loading(), fetch.WithValidator(ValidateTestimonials))
	return fetch.Fetch[[]Testimonial](ctx, c.fetcher, PathTestimonials, opts...)
}

// Submission is the outcome of a form post.
type Submission struct {
	Data   SubmitResponse `json:"data,omitempty"`
	Err    error          `json:"-"`
	Notice string         `json:"message"`
}

// OK reports whether the form was accepted.
func (s Submission) OK() bool { return s.Err == nil }

// Contact validates and posts the contact form.
func (c *Client) Contact(ctx context.Context, req ContactRequest) Submission {
	return c.submit(ctx, PathContact, req, ContactSent, ContactFailed)
}

// Subscribe validates and posts the newsletter form.
func (c *Client) Subscribe(ctx context.Context, req SubscribeRequest) Submission {
	return c.submit(ctx, PathSubscribe, req, SubscribeSent, SubscribeFailed)
}

func (c *Client) submit(ctx context.Context, path string, body any, sent, failed string) Submission {
	if err := validation.Validate(body); err != nil {
		c.log.Debug("form rejected", logger.Fields(logger.FieldURL, path, logger.FieldError, err.Error()))
		return Submission{Err: err, Notice: failed}
	}

	opts := append(c.loading(), fetch.WithJSON(body), fetch.WithAllowEmpty())
	res := fetch.Fetch[SubmitResponse](ctx, c.fetcher, path, opts...)
	if res.Err != nil {
		return Submission{Err: res.Err, Notice: failed}
	}

	data := *res.Data
	if data == nil {
		data = SubmitResponse{}
	}
	return Submission{Data: data, Notice: sent}
}
