// Package httpclient is the transport under sitekit's fetch wrapper.
//
// The Adapter resolves paths against a base URL, applies default and
// per-request headers and authentication, reads the full body, and
// classifies non-2xx statuses and transport failures into *Error values.
// It never retries; callers decide what a failure means.
//
//	a, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://win24-assignment.azurewebsites.net",
//	    Timeout: 10 * time.Second,
//	})
//
//	resp, err := a.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/api/faq",
//	})
package httpclient
