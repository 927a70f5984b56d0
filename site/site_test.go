package site_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/sitekit/component"
	apperrors "github.com/kbukum/sitekit/errors"
	"github.com/kbukum/sitekit/fetch"
	"github.com/kbukum/sitekit/logger"
	"github.com/kbukum/sitekit/mockapi"
	"github.com/kbukum/sitekit/provider"
	"github.com/kbukum/sitekit/site"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newClient(t *testing.T, mutate ...func(*site.APIConfig)) (*site.Client, *mockapi.Server) {
	t.Helper()
	api := mockapi.New(mockapi.WithLogger(logger.Nop()))
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	cfg := site.APIConfig{BaseURL: srv.URL}
	for _, m := range mutate {
		m(&cfg)
	}
	c, err := site.NewClient(cfg, site.WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c, api
}

func TestClient_FAQs(t *testing.T) {
	c, _ := newClient(t)

	res := c.FAQs(context.Background())
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(*res.Data) != len(mockapi.DefaultFAQs()) {
		t.Errorf("expected %d faqs, got %d", len(mockapi.DefaultFAQs()), len(*res.Data))
	}
	if res.Message != fetch.MessageSuccess {
		t.Errorf("unexpected message %q", res.Message)
	}
}

func TestClient_PayloadValidation(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*mockapi.Server)
		call  func(*site.Client) error
	}{
		{
			name:  "faq without id",
			setup: func(a *mockapi.Server) { a.SetFAQs([]site.FAQ{{Title: "t"}}) },
			call:  func(c *site.Client) error { return c.FAQs(context.Background()).Err },
		},
		{
			name:  "rating above five",
			setup: func(a *mockapi.Server) { a.SetTestimonials([]site.Testimonial{{ID: "1", StarRating: 6}}) },
			call:  func(c *site.Client) error { return c.Testimonials(context.Background()).Err },
		},
		{
			name:  "duplicate faq id",
			setup: func(a *mockapi.Server) { a.SetFAQs([]site.FAQ{{ID: "1"}, {ID: "2"}, {ID: "1"}}) },
			call:  func(c *site.Client) error { return c.FAQs(context.Background()).Err },
		},
		{
			name: "duplicate testimonial id",
			setup: func(a *mockapi.Server) {
				a.SetTestimonials([]site.Testimonial{{ID: "7", StarRating: 4}, {ID: "7", StarRating: 5}})
			},
			call: func(c *site.Client) error { return c.Testimonials(context.Background()).Err },
		},
		{
			name:  "object instead of list",
			setup: func(a *mockapi.Server) { a.Respond(site.PathTestimonials, http.StatusOK, `{}`) },
			call:  func(c *site.Client) error { return c.Testimonials(context.Background()).Err },
		},
		{
			name:  "primitive body",
			setup: func(a *mockapi.Server) { a.Respond(site.PathFAQ, http.StatusOK, `5`) },
			call:  func(c *site.Client) error { return c.FAQs(context.Background()).Err },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, api := newClient(t)
			tt.setup(api)
			if err := tt.call(c); !fetch.IsFormatError(err) {
				t.Errorf("expected format error, got %v", err)
			}
		})
	}
}

func TestClient_HTTPError(t *testing.T) {
	c, api := newClient(t)
	api.Respond(site.PathFAQ, http.StatusNotFound, `{"error":"missing"}`)

	res := c.FAQs(context.Background())
	if fetch.StatusCode(res.Err) != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", res.Err)
	}
	appErr := fetch.ToAppError(res.Err)
	if appErr.Code != apperrors.ErrCodeHTTP || appErr.Message != "HTTP error! status: 404" {
		t.Errorf("unexpected app error %+v", appErr)
	}
}

func TestClient_SimulatedLoading(t *testing.T) {
	c, _ := newClient(t, func(cfg *site.APIConfig) {
		cfg.SimulateLoading = true
		cfg.LoadingTime = 40 * time.Millisecond
	})

	start := time.Now()
	if res := c.Testimonials(context.Background()); res.Err != nil {
		t.Fatal(res.Err)
	}
	if time.Since(start) < 40*time.Millisecond {
		t.Error("expected simulated loading delay")
	}
}

func TestClient_Contact(t *testing.T) {
	c, api := newClient(t)

	sub := c.Contact(context.Background(), site.ContactRequest{
		FullName: "Sarah Kerrigan", Email: "sarah@char.zerg", Specialist: "warhammer",
	})
	if !sub.OK() {
		t.Fatalf("unexpected error: %v", sub.Err)
	}
	if sub.Notice != site.ContactSent {
		t.Errorf("unexpected notice %q", sub.Notice)
	}
	if got := api.Contacts(); len(got) != 1 || got[0].Specialist != "warhammer" {
		t.Errorf("unexpected contacts %+v", got)
	}
}

func TestClient_ContactInvalidIssuesNoRequest(t *testing.T) {
	tests := []struct {
		name string
		req  site.ContactRequest
		want string
	}{
		{"missing name", site.ContactRequest{Email: "a@b.se", Specialist: "other"}, "fullName: is required"},
		{"bad email", site.ContactRequest{FullName: "A", Email: "nope", Specialist: "other"}, "email: Invalid email address"},
		{"unknown specialist", site.ContactRequest{FullName: "A", Email: "a@b.se", Specialist: "chess"}, "specialist: must be one of"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, api := newClient(t)
			sub := c.Contact(context.Background(), tt.req)
			if !apperrors.HasCode(sub.Err, apperrors.ErrCodeInvalidInput) {
				t.Fatalf("expected INVALID_INPUT, got %v", sub.Err)
			}
			if !strings.Contains(sub.Err.Error(), tt.want) {
				t.Errorf("expected %q in %v", tt.want, sub.Err)
			}
			if sub.Notice != site.ContactFailed {
				t.Errorf("unexpected notice %q", sub.Notice)
			}
			if api.Hits(site.PathContact) != 0 {
				t.Error("no request should be issued for invalid input")
			}
		})
	}
}

func TestClient_Subscribe(t *testing.T) {
	c, api := newClient(t)

	sub := c.Subscribe(context.Background(), site.SubscribeRequest{Email: "news@letter.se"})
	if !sub.OK() || sub.Notice != site.SubscribeSent {
		t.Fatalf("unexpected submission %+v", sub)
	}
	if len(api.Subscriptions()) != 1 {
		t.Errorf("expected 1 subscription, got %d", len(api.Subscriptions()))
	}

	long := site.SubscribeRequest{Email: strings.Repeat("a", 121) + "@b.se"}
	sub = c.Subscribe(context.Background(), long)
	if sub.Err == nil || !strings.Contains(sub.Err.Error(), "Your Email is too long, shorten it :D") {
		t.Errorf("expected max length message, got %v", sub.Err)
	}

	sub = c.Subscribe(context.Background(), site.SubscribeRequest{})
	if sub.Err == nil || !strings.Contains(sub.Err.Error(), "Email address is required :)") {
		t.Errorf("expected required message, got %v", sub.Err)
	}
}

func TestClient_SubmitEmptyBody(t *testing.T) {
	c, api := newClient(t)
	api.Respond(site.PathSubscribe, http.StatusOK, ``)

	sub := c.Subscribe(context.Background(), site.SubscribeRequest{Email: "a@b.se"})
	if !sub.OK() {
		t.Errorf("expected empty 2xx body to be accepted, got %v", sub.Err)
	}
}

func TestProviders_InTree(t *testing.T) {
	c, api := newClient(t)

	tree := component.NewTree()
	faq := site.NewFAQProvider(c, provider.WithLogger(logger.Nop()))
	testimonials := site.NewTestimonialsProvider(c, provider.WithLogger(logger.Nop()))
	_ = tree.Add(faq)
	_ = tree.Add(testimonials)
	if err := tree.Mount(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = tree.Unmount(context.Background()) }()

	if got := site.UseFAQ(tree).Items(); len(got) != len(mockapi.DefaultFAQs()) {
		t.Errorf("unexpected faq items %d", len(got))
	}
	if got := site.UseTestimonials(tree.Child()).Items(); len(got) != len(mockapi.DefaultTestimonials()) {
		t.Errorf("unexpected testimonial items %d", len(got))
	}

	// mount again is a no-op, refresh always hits the API
	_ = tree.Mount(context.Background())
	faq.Refresh(context.Background())
	if api.Hits(site.PathFAQ) != 2 {
		t.Errorf("expected 2 faq hits, got %d", api.Hits(site.PathFAQ))
	}
}

func TestUseFAQOutsideProvider(t *testing.T) {
	defer func() {
		appErr, ok := recover().(*apperrors.AppError)
		if !ok || appErr.Message != "useFaq must be used within FaqProvider" {
			t.Errorf("expected context misuse panic, got %v", appErr)
		}
	}()
	site.UseFAQ(component.NewTree())
}

func TestClient_BearerToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, err := site.NewClient(site.APIConfig{BaseURL: srv.URL, Token: "s3cret"}, site.WithLogger(logger.Nop()))
	if err != nil {
		t.Fatal(err)
	}
	if res := c.FAQs(context.Background()); res.Err != nil {
		t.Fatal(res.Err)
	}
	if got != "Bearer s3cret" {
		t.Errorf("unexpected Authorization %q", got)
	}
}

func TestClient_APIKey(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "default header", want: "X-API-Key"},
		{name: "custom header", header: "Ocp-Apim-Subscription-Key", want: "Ocp-Apim-Subscription-Key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got, auth string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get(tt.want)
				auth = r.Header.Get("Authorization")
				_, _ = w.Write([]byte(`[]`))
			}))
			defer srv.Close()

			cfg := site.APIConfig{BaseURL: srv.URL, APIKey: "k3y", APIKeyHeader: tt.header}
			c, err := site.NewClient(cfg, site.WithLogger(logger.Nop()))
			if err != nil {
				t.Fatal(err)
			}
			if res := c.FAQs(context.Background()); res.Err != nil {
				t.Fatal(res.Err)
			}
			if got != "k3y" || auth != "" {
				t.Errorf("expected key in %s only, got %q (Authorization %q)", tt.want, got, auth)
			}
		})
	}
}
