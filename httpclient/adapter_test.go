package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestAdapter_Do_GET(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/api/faq" {
			t.Errorf("expected /api/faq, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"1"}]`))
	}))
	defer srv.Close()

	a, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := a.Do(context.Background(), Request{Path: "/api/faq"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsSuccess() {
		t.Errorf("expected success, got %d", resp.StatusCode)
	}
	if string(resp.Body) != `[{"id":"1"}]` {
		t.Errorf("unexpected body %s", resp.Body)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Errorf("expected flattened content type, got %q", resp.Headers["Content-Type"])
	}
}

func TestAdapter_Do_POST_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %s", ct)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "a@b.se" {
			t.Errorf("expected email in body, got %v", body)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	a, _ := New(Config{BaseURL: srv.URL})
	resp, err := a.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "api/forms/subscribe",
		Body:   map[string]string{"email": "a@b.se"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
}

func TestAdapter_Do_HeadersAndAuth(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		req    Request
		header string
		want   string
	}{
		{"default header", Config{Headers: map[string]string{"X-Site": "silicon"}}, Request{}, "X-Site", "silicon"},
		{"request overrides default", Config{Headers: map[string]string{"X-Site": "silicon"}}, Request{Headers: map[string]string{"X-Site": "other"}}, "X-Site", "other"},
		{"bearer", Config{Auth: BearerAuth("tok")}, Request{}, "Authorization", "Bearer tok"},
		{"bearer override", Config{Auth: BearerAuth("tok")}, Request{Auth: BearerAuth("other")}, "Authorization", "Bearer other"},
		{"api key default header", Config{Auth: APIKeyAuth("k", "")}, Request{}, "X-API-Key", "k"},
		{"api key custom header", Config{Auth: APIKeyAuth("k", "X-Key")}, Request{}, "X-Key", "k"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get(tc.header); got != tc.want {
					t.Errorf("expected %s=%q, got %q", tc.header, tc.want, got)
				}
			}))
			defer srv.Close()

			tc.cfg.BaseURL = srv.URL
			a, err := New(tc.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, err := a.Do(context.Background(), tc.req); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestAdapter_Do_StatusClassification(t *testing.T) {
	for _, code := range []int{400, 404, 429, 500, 503} {
		t.Run(fmt.Sprintf("HTTP_%d", code), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(code)
				_, _ = w.Write([]byte(`{"error":"x"}`))
			}))
			defer srv.Close()

			a, _ := New(Config{BaseURL: srv.URL})
			resp, err := a.Do(context.Background(), Request{})
			if !IsStatus(err) {
				t.Fatalf("expected status error, got %v", err)
			}
			if StatusCode(err) != code {
				t.Errorf("expected status %d, got %d", code, StatusCode(err))
			}
			if resp == nil || resp.StatusCode != code {
				t.Fatal("expected response alongside the status error")
			}
		})
	}
}

func TestAdapter_Do_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	a, _ := New(Config{BaseURL: url})
	_, err := a.Do(context.Background(), Request{Path: "/api/faq"})
	if !IsConnection(err) {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestAdapter_Do_ContextCanceled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	a, _ := New(Config{BaseURL: srv.URL})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := a.Do(ctx, Request{})
	if !IsTimeout(err) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

type failingTransport struct{ err error }

func (f failingTransport) RoundTrip(*http.Request) (*http.Response, error) { return nil, f.err }

func TestAdapter_WithTransport(t *testing.T) {
	boom := errors.New("dns: no such host")
	a, _ := New(Config{BaseURL: "http://api.invalid"}, WithTransport(failingTransport{err: boom}))

	_, err := a.Do(context.Background(), Request{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
	if !IsConnection(err) {
		t.Errorf("expected connection classification, got %v", err)
	}
}

func TestAdapter_ResolveURL(t *testing.T) {
	a, _ := New(Config{BaseURL: "https://api.example.com/"})
	tests := map[string]string{
		"/api/faq":                 "https://api.example.com/api/faq",
		"api/faq":                  "https://api.example.com/api/faq",
		"http://other.test/api/x":  "http://other.test/api/x",
		"https://other.test/api/x": "https://other.test/api/x",
	}
	for in, want := range tests {
		if got := a.ResolveURL(in); got != want {
			t.Errorf("ResolveURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	if _, err := New(Config{BaseURL: "not a url"}); err == nil || !strings.Contains(err.Error(), "base_url") {
		t.Errorf("expected base_url validation error, got %v", err)
	}
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Timeout != defaultTimeout || cfg.Name != "http" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}
