// Package mockapi serves a stand-in for the site API: canned FAQ and
// testimonial lists plus the two form endpoints. Tests and `sitectl
// serve-mock` use it to exercise every fetch outcome, including status
// overrides, malformed bodies and slow responses.
//
//	api := mockapi.New()
//	api.Respond(site.PathFAQ, http.StatusInternalServerError, `{"error":"down"}`)
//	srv := httptest.NewServer(api.Handler())
package mockapi
