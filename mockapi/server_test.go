package mockapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/sitekit/component"
	"github.com/kbukum/sitekit/logger"
	"github.com/kbukum/sitekit/site"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	api := New(WithLogger(logger.Nop()))
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)
	return api, srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func post(t *testing.T, url, body string) (int, string) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func TestListFixtures(t *testing.T) {
	api, srv := newTestServer(t)

	status, body := get(t, srv.URL+site.PathFAQ)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var faqs []site.FAQ
	if err := json.Unmarshal([]byte(body), &faqs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(faqs) != len(DefaultFAQs()) {
		t.Errorf("expected %d faqs, got %d", len(DefaultFAQs()), len(faqs))
	}

	api.SetTestimonials([]site.Testimonial{{ID: "x", Author: "A", StarRating: 3}})
	_, body = get(t, srv.URL+site.PathTestimonials)
	if !strings.Contains(body, `"jobRole"`) || !strings.Contains(body, `"starRating":3`) {
		t.Errorf("unexpected testimonials body %s", body)
	}
	if api.Hits(site.PathFAQ) != 1 || api.Hits(site.PathTestimonials) != 1 {
		t.Errorf("unexpected hit counts %d %d", api.Hits(site.PathFAQ), api.Hits(site.PathTestimonials))
	}
}

func TestRespondOverride(t *testing.T) {
	api, srv := newTestServer(t)

	api.Respond(site.PathFAQ, http.StatusServiceUnavailable, `{"error":"down"}`)
	status, body := get(t, srv.URL+site.PathFAQ)
	if status != http.StatusServiceUnavailable || body != `{"error":"down"}` {
		t.Errorf("expected override, got %d %s", status, body)
	}

	api.Clear(site.PathFAQ)
	if status, _ := get(t, srv.URL+site.PathFAQ); status != http.StatusOK {
		t.Errorf("expected normal answer after Clear, got %d", status)
	}
}

func TestDelay(t *testing.T) {
	api, srv := newTestServer(t)
	api.Delay(site.PathFAQ, 50*time.Millisecond)

	start := time.Now()
	get(t, srv.URL+site.PathFAQ)
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("expected delayed answer, took %v", elapsed)
	}
}

func TestContactForm(t *testing.T) {
	api, srv := newTestServer(t)

	status, _ := post(t, srv.URL+site.PathContact, `{"fullName":"Jim Raynor","email":"jim@mar.sara","specialist":"starcraft"}`)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if got := api.Contacts(); len(got) != 1 || got[0].FullName != "Jim Raynor" {
		t.Errorf("unexpected contacts %+v", got)
	}

	status, body := post(t, srv.URL+site.PathContact, `{"fullName":"","email":"nope","specialist":"chess"}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if !strings.Contains(body, "INVALID_INPUT") || !strings.Contains(body, "Invalid email address") {
		t.Errorf("unexpected error body %s", body)
	}
}

func TestSubscribeForm(t *testing.T) {
	api, srv := newTestServer(t)

	if status, _ := post(t, srv.URL+site.PathSubscribe, `{"email":"a@b.se"}`); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if status, _ := post(t, srv.URL+site.PathSubscribe, `5`); status != http.StatusBadRequest {
		t.Errorf("expected 400 for non-object body, got %d", status)
	}
	if len(api.Subscriptions()) != 1 {
		t.Errorf("expected 1 subscription, got %d", len(api.Subscriptions()))
	}

	api.Reset()
	if len(api.Subscriptions()) != 0 || api.Hits(site.PathSubscribe) != 0 {
		t.Error("expected Reset to clear state")
	}
}

func TestRequestIDEchoed(t *testing.T) {
	_, srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+site.PathFAQ, nil)
	req.Header.Set("X-Request-ID", "abc")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.Header.Get("X-Request-Id") != "abc" {
		t.Errorf("expected request id echoed, got %q", resp.Header.Get("X-Request-Id"))
	}
}

func TestStartStop(t *testing.T) {
	api := New(WithLogger(logger.Nop()), WithConfig(Config{Host: "127.0.0.1"}))
	if api.URL() != "" {
		t.Error("expected empty URL before Start")
	}

	tree := component.NewTree()
	_ = tree.Add(api)
	if err := tree.Mount(context.Background()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if h := api.Health(context.Background()); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy, got %+v", h)
	}

	status, _ := get(t, api.URL()+"/health")
	if status != http.StatusOK {
		t.Errorf("expected 200 from /health, got %d", status)
	}

	if err := tree.Unmount(context.Background()); err != nil {
		t.Fatalf("Unmount: %v", err)
	}
	if h := api.Health(context.Background()); h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy after stop, got %+v", h)
	}
}
